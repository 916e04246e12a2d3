// Package ulid implements a 128-bit, lexicographically sortable unique
// identifier.
//
// # Layout
//
// A ULID is a 48-bit millisecond Unix timestamp followed by 80 bits of
// randomness. Viewed as a single big-endian unsigned integer the value is
//
//	timestamp<<80 | randomness
//
// and every representation preserves that order:
//
//   - the binary form is 16 bytes, big-endian, timestamp first;
//   - the text form is 26 characters of Crockford base32 (without I, L, O, U),
//     uppercase on output and case-insensitive on input.
//
// Comparing two ULIDs with Compare, comparing their Bytes with bytes.Compare
// and comparing their String with strings.Compare always agree.
//
// # Generation
//
//	g := ulid.NewGenerator()
//	id, err := g.New()
//
// A Generator draws its timestamp from an injectable clock and its randomness
// from an injectable io.Reader; both are guarded by a mutex so one Generator
// may be shared between goroutines. Make and Generate use a lazily built
// process-wide Generator.
//
// No monotonic increment is applied: two ULIDs generated within the same
// millisecond are ordered by their random bits only.
//
// # Parsing
//
//	id, err := ulid.Parse("01ARYZ6S41TSV4RRFFQ69G5FAV")
//	switch {
//	case errors.Is(err, ulid.ErrInvalidLength):
//	case errors.Is(err, ulid.ErrInvalidCharacter):
//	case errors.Is(err, ulid.ErrOverflow):
//	}
package ulid
