package ulid

import (
	"encoding/binary"
	"fmt"
)

// Array returns the 16-byte big-endian binary form.
func (u ULID) Array() [BinarySize]byte {
	var b [BinarySize]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return b
}

// Bytes returns the 16-byte big-endian binary form: bytes 0-5 hold the
// timestamp and bytes 6-15 the randomness, most significant byte first.
func (u ULID) Bytes() []byte {
	b := u.Array()
	return b[:]
}

// FromBytes decodes the 16-byte binary form. Every 16-byte pattern is a
// valid ULID.
func FromBytes(b []byte) (ULID, error) {
	if len(b) != BinarySize {
		return ULID{}, fmt.Errorf("%w: binary form is %d bytes, want %d", ErrInvalidLength, len(b), BinarySize)
	}
	return ULID{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}, nil
}

// MarshalBinaryTo writes the binary form into dst, which must be exactly 16
// bytes long.
func (u ULID) MarshalBinaryTo(dst []byte) error {
	if len(dst) != BinarySize {
		return fmt.Errorf("%w: destination is %d bytes, want %d", ErrInvalidLength, len(dst), BinarySize)
	}
	binary.BigEndian.PutUint64(dst[:8], u.hi)
	binary.BigEndian.PutUint64(dst[8:], u.lo)
	return nil
}

// AppendBinary implements encoding.BinaryAppender.
func (u ULID) AppendBinary(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint64(b, u.hi)
	return binary.BigEndian.AppendUint64(b, u.lo), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (u ULID) MarshalBinary() ([]byte, error) {
	return u.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error u is left
// unchanged.
func (u *ULID) UnmarshalBinary(data []byte) error {
	v, err := FromBytes(data)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
