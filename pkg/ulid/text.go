package ulid

import "fmt"

// Crockford's base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const invalidSymbol = 0xFF

// decodeTable maps an input byte to its 5-bit value, accepting upper and
// lower case letters. Everything else maps to invalidSymbol.
var decodeTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidSymbol
	}
	for i := 0; i < len(crockfordBase32); i++ {
		c := crockfordBase32[i]
		t[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			t[c+'a'-'A'] = byte(i)
		}
	}
	return t
}()

// group returns the 5 bits of u starting at bit position shift, counted from
// the least significant bit of the 128-bit value.
func (u ULID) group(shift uint) byte {
	var v uint64
	switch {
	case shift >= 64:
		v = u.hi >> (shift - 64)
	case shift > 64-5:
		v = u.lo>>shift | u.hi<<(64-shift)
	default:
		v = u.lo >> shift
	}
	return byte(v & 0x1F)
}

func (u ULID) encode(dst []byte) {
	// 26 groups cover 130 bits; the first holds only the top 3.
	for i := range EncodedSize {
		dst[i] = crockfordBase32[u.group(uint(5*(EncodedSize-1-i)))]
	}
}

// String returns the canonical 26-character uppercase text form.
func (u ULID) String() string {
	var b [EncodedSize]byte
	u.encode(b[:])
	return string(b[:])
}

// AppendText implements encoding.TextAppender.
func (u ULID) AppendText(b []byte) ([]byte, error) {
	var e [EncodedSize]byte
	u.encode(e[:])
	return append(b, e[:]...), nil
}

// MarshalText implements encoding.TextMarshaler.
func (u ULID) MarshalText() ([]byte, error) {
	b := make([]byte, EncodedSize)
	u.encode(b)
	return b, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On error u is left
// unchanged.
func (u *ULID) UnmarshalText(text []byte) error {
	v, err := parse(text)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Parse decodes the 26-character text form. Letters are accepted in either
// case. It fails with ErrInvalidLength, ErrInvalidCharacter or ErrOverflow;
// no partial value is ever returned.
func Parse(s string) (ULID, error) {
	return parse([]byte(s))
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ULID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func parse(s []byte) (ULID, error) {
	if len(s) != EncodedSize {
		return ULID{}, fmt.Errorf("%w: text form is %d characters, want %d", ErrInvalidLength, len(s), EncodedSize)
	}
	for i, c := range s {
		if decodeTable[c] == invalidSymbol {
			return ULID{}, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, c, i)
		}
	}
	if decodeTable[s[0]] > 7 {
		return ULID{}, fmt.Errorf("%w: leading character %q exceeds '7'", ErrOverflow, s[0])
	}

	var u ULID
	for _, c := range s {
		u.hi = u.hi<<5 | u.lo>>59
		u.lo = u.lo<<5 | uint64(decodeTable[c])
	}
	return u, nil
}
