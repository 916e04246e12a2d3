package ulid_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ulidkit/pkg/ulid"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	t.Run("big-endian layout", func(t *testing.T) {
		t.Parallel()

		id := ulid.MustParse(refText)
		assert.Equal(t, refHex, hex.EncodeToString(id.Bytes()))

		arr := id.Array()
		assert.Equal(t, id.Bytes(), arr[:])
	})

	t.Run("timestamp occupies first six bytes", func(t *testing.T) {
		t.Parallel()

		id, err := ulid.New(0x010203040506, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, id.Bytes())
	})

	t.Run("randomness occupies last ten bytes", func(t *testing.T) {
		t.Parallel()

		id, err := ulid.New(0, 0x0708, 0x090a0b0c0d0e0f10)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, id.Bytes())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		id := ulid.MustParse(refText)
		b := id.Bytes()
		b[0] = 0xFF
		assert.Equal(t, refText, id.String())
	})
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("decodes", func(t *testing.T) {
		t.Parallel()

		raw, err := hex.DecodeString(refHex)
		require.NoError(t, err)

		id, err := ulid.FromBytes(raw)
		require.NoError(t, err)
		assert.Equal(t, refText, id.String())
	})

	t.Run("any pattern is valid", func(t *testing.T) {
		t.Parallel()

		raw := make([]byte, ulid.BinarySize)
		for i := range raw {
			raw[i] = 0xFF
		}
		id, err := ulid.FromBytes(raw)
		require.NoError(t, err)
		assert.Equal(t, "7ZZZZZZZZZZZZZZZZZZZZZZZZZ", id.String())
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{0, 1, 15, 17, 26} {
			_, err := ulid.FromBytes(make([]byte, n))
			assert.ErrorIs(t, err, ulid.ErrInvalidLength, "length %d", n)
		}
	})
}

func TestBinaryMarshaling(t *testing.T) {
	t.Parallel()

	id := ulid.MustParse(refText)

	data, err := id.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, id.Bytes(), data)

	appended, err := id.AppendBinary([]byte{0xAA})
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0xAA}, id.Bytes()...), appended)

	dst := make([]byte, ulid.BinarySize)
	require.NoError(t, id.MarshalBinaryTo(dst))
	assert.Equal(t, id.Bytes(), dst)
	assert.ErrorIs(t, id.MarshalBinaryTo(make([]byte, 8)), ulid.ErrInvalidLength)

	var got ulid.ULID
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, id, got)

	require.ErrorIs(t, got.UnmarshalBinary(data[:15]), ulid.ErrInvalidLength)
	assert.Equal(t, id, got, "failed unmarshal must not modify the value")
}
