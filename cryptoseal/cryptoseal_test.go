package cryptoseal

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, KeySize)
	_, err := rand.Read(k)
	require.NoError(t, err)

	return k
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("hello snapshot body")
	require.Equal(t, Checksum(data), Checksum(data))
	require.NotEqual(t, Checksum(data), Checksum([]byte("different")))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := randKey(t)
	aad := []byte("header-aad")
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	sealed, err := Seal(key, aad, plaintext)
	require.NoError(t, err)

	out, err := Open(key, aad, sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, out)
}

func TestSeal_NonDeterministic(t *testing.T) {
	key := randKey(t)
	aad := []byte("aad")
	plaintext := []byte("same plaintext")

	a, err := Seal(key, aad, plaintext)
	require.NoError(t, err)
	b, err := Seal(key, aad, plaintext)
	require.NoError(t, err)

	require.False(t, bytes.Equal(a, b), "two seals of the same plaintext must differ (nonce)")

	outA, err := Open(key, aad, a)
	require.NoError(t, err)
	outB, err := Open(key, aad, b)
	require.NoError(t, err)
	require.Equal(t, outA, outB)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key1 := randKey(t)
	key2 := randKey(t)
	aad := []byte("aad")

	sealed, err := Seal(key1, aad, []byte("secret"))
	require.NoError(t, err)

	_, err = Open(key2, aad, sealed)
	require.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := randKey(t)
	aad := []byte("aad")

	sealed, err := Seal(key, aad, []byte("secret payload"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF

	_, err = Open(key, aad, sealed)
	require.Error(t, err)
}

func TestOpen_TamperedAADFails(t *testing.T) {
	key := randKey(t)

	sealed, err := Seal(key, []byte("aad-v1"), []byte("secret payload"))
	require.NoError(t, err)

	_, err = Open(key, []byte("aad-v2"), sealed)
	require.Error(t, err)
}

func TestSeal_InvalidKeySize(t *testing.T) {
	_, err := Seal([]byte("too short"), nil, []byte("data"))
	require.Error(t, err)
}

func TestOpen_TruncatedInput(t *testing.T) {
	key := randKey(t)
	_, err := Open(key, nil, []byte{1, 2, 3})
	require.Error(t, err)
}
