package ulid

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"
)

const (
	// MaxTime is the largest timestamp a ULID can hold (2^48 - 1 ms,
	// roughly the year 10889).
	MaxTime uint64 = 1<<48 - 1

	// EncodedSize is the length of the text form.
	EncodedSize = 26

	// BinarySize is the length of the binary form.
	BinarySize = 16

	// EntropySize is the number of random bytes in a ULID.
	EntropySize = 10

	maxRandHi = 1<<16 - 1
)

// ULID is a 128-bit identifier: 48 bits of millisecond timestamp followed by
// 80 bits of randomness. The zero value is the smallest ULID.
//
// hi carries the timestamp in its upper 48 bits and the top 16 bits of
// randomness below it; lo carries the remaining 64 bits of randomness.
// Comparing (hi, lo) as unsigned integers is therefore the numeric order.
type ULID struct {
	hi uint64
	lo uint64
}

// Zero is the zero ULID, 00000000000000000000000000.
var Zero ULID

// New builds a ULID from a millisecond timestamp and an 80-bit randomness
// value given as its upper 16 bits (randHi) and lower 64 bits (randLo).
func New(ms, randHi, randLo uint64) (ULID, error) {
	if ms > MaxTime {
		return ULID{}, fmt.Errorf("%w: timestamp %d exceeds 48 bits", ErrRange, ms)
	}
	if randHi > maxRandHi {
		return ULID{}, fmt.Errorf("%w: randomness exceeds 80 bits", ErrRange)
	}
	return ULID{hi: ms<<16 | randHi, lo: randLo}, nil
}

// FromBig builds a ULID from a millisecond timestamp and an arbitrary
// precision randomness value, which must be in [0, 2^80).
func FromBig(ms uint64, randomness *big.Int) (ULID, error) {
	if randomness == nil {
		return New(ms, 0, 0)
	}
	if randomness.Sign() < 0 || randomness.BitLen() > 8*EntropySize {
		return ULID{}, fmt.Errorf("%w: randomness %s is not an unsigned 80-bit value", ErrRange, randomness)
	}
	var e [EntropySize]byte
	randomness.FillBytes(e[:])
	return New(ms, uint64(binary.BigEndian.Uint16(e[:2])), binary.BigEndian.Uint64(e[2:]))
}

// fromEntropy builds a ULID from a timestamp already known to fit and ten
// big-endian random bytes.
func fromEntropy(ms uint64, e []byte) ULID {
	return ULID{
		hi: ms<<16 | uint64(binary.BigEndian.Uint16(e[:2])),
		lo: binary.BigEndian.Uint64(e[2:EntropySize]),
	}
}

// Timestamp converts t to milliseconds since the Unix epoch. Times before the
// epoch or after MaxTime fail with ErrRange.
func Timestamp(t time.Time) (uint64, error) {
	ms := t.UnixMilli()
	if ms < 0 || uint64(ms) > MaxTime {
		return 0, fmt.Errorf("%w: time %s outside the 48-bit millisecond range", ErrRange, t.UTC().Format(time.RFC3339Nano))
	}
	return uint64(ms), nil
}

// Timestamp returns the millisecond timestamp.
func (u ULID) Timestamp() uint64 { return u.hi >> 16 }

// Time returns the timestamp as a UTC time.
func (u ULID) Time() time.Time {
	return time.UnixMilli(int64(u.Timestamp())).UTC()
}

// Randomness returns the 80-bit random component split into its upper 16
// bits and lower 64 bits.
func (u ULID) Randomness() (hi, lo uint64) {
	return u.hi & maxRandHi, u.lo
}

// Entropy returns the random component as 10 big-endian bytes.
func (u ULID) Entropy() []byte {
	b := u.Array()
	e := make([]byte, EntropySize)
	copy(e, b[6:])
	return e
}

// Big returns the 128-bit value as an unsigned big integer.
func (u ULID) Big() *big.Int {
	b := u.Array()
	return new(big.Int).SetBytes(b[:])
}

// IsZero reports whether u is the zero ULID.
func (u ULID) IsZero() bool { return u == Zero }
