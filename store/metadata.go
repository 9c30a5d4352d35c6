// Package store implements SnapshotStore: a directory of paired
// `{id}.tx2pack` envelopes and `{id}.meta.json` sidecars.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/tx2pack/tx2pack/errs"
)

// SnapshotMetadata is the sidecar record stored alongside every envelope.
// ID must match the on-disk filename stem.
type SnapshotMetadata struct {
	ID              string            `json:"id"`
	Name            string            `json:"name,omitempty"`
	Description     string            `json:"description,omitempty"`
	CreatedAtUnix   int64             `json:"created_at_unix_seconds"`
	WorldTimeSecond float64           `json:"world_time_seconds"`
	SchemaVersion   uint32            `json:"schema_version"`
	CustomFields    map[string]string `json:"custom_fields,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
}

func marshalMetadata(m SnapshotMetadata) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: marshal metadata: %w", errs.ErrSerialization, err)
	}

	return data, nil
}

func unmarshalMetadata(data []byte) (SnapshotMetadata, error) {
	var m SnapshotMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return SnapshotMetadata{}, fmt.Errorf("%w: unmarshal metadata: %w", errs.ErrDeserialization, err)
	}

	return m, nil
}
