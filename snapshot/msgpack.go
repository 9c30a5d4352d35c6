package snapshot

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tx2pack/tx2pack/errs"
)

// encodeMsgpack serializes a wireBody using vmihailenco/msgpack/v5, giving
// the Binary format's cross-runtime counterpart.
func encodeMsgpack(w wireBody) ([]byte, error) {
	data, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("%w: msgpack: %w", errs.ErrSerialization, err)
	}

	return data, nil
}

func decodeMsgpack(data []byte) (wireBody, error) {
	var w wireBody
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return wireBody{}, fmt.Errorf("%w: msgpack: %w", errs.ErrDeserialization, err)
	}

	return w, nil
}
