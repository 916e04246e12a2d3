package ulid

import (
	"cmp"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Compare returns -1, 0 or +1 depending on whether u orders before, equal to
// or after other. Timestamp is the primary key and randomness, as an
// unsigned 80-bit integer, the secondary one.
func (u ULID) Compare(other ULID) int {
	if c := cmp.Compare(u.hi, other.hi); c != 0 {
		return c
	}
	return cmp.Compare(u.lo, other.lo)
}

// Equal reports whether u and other hold the same timestamp and randomness.
// It is equivalent to u == other.
func (u ULID) Equal(other ULID) bool { return u == other }

// Less reports whether u orders strictly before other.
func (u ULID) Less(other ULID) bool { return u.Compare(other) < 0 }

// Hash returns a 64-bit hash of u. Equal ULIDs hash equally.
func (u ULID) Hash() uint64 {
	b := u.Array()
	return xxhash.Sum64(b[:])
}

// Compare is the package-level form of ULID.Compare, usable with
// slices.SortFunc and friends.
func Compare(a, b ULID) int { return a.Compare(b) }

// Sort sorts ids in ascending order.
func Sort(ids []ULID) { slices.SortFunc(ids, Compare) }
