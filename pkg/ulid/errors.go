package ulid

import "errors"

// Sentinel errors returned by constructors and decoders.
var (
	// ErrRange is returned when a timestamp does not fit in 48 bits or
	// randomness does not fit in 80 bits.
	ErrRange = errors.New("ulid: value out of range")

	// ErrInvalidLength is returned when binary input is not 16 bytes or text
	// input is not 26 characters.
	ErrInvalidLength = errors.New("ulid: invalid length")

	// ErrInvalidCharacter is returned when text input contains a character
	// outside the base32 alphabet.
	ErrInvalidCharacter = errors.New("ulid: invalid character")

	// ErrOverflow is returned when text input encodes a value above the
	// largest ULID (first character greater than '7').
	ErrOverflow = errors.New("ulid: overflow")

	// ErrScanValue is returned by Scan for unsupported source types.
	ErrScanValue = errors.New("ulid: unsupported scan source")
)
