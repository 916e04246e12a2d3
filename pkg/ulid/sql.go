package ulid

import (
	"database/sql/driver"
	"fmt"
)

// Scan implements sql.Scanner. It accepts the 16-byte binary form, the
// 26-character text form as string or []byte, and NULL (the zero ULID).
func (u *ULID) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		*u = Zero
		return nil
	case string:
		return u.UnmarshalText([]byte(x))
	case []byte:
		if len(x) == EncodedSize {
			return u.UnmarshalText(x)
		}
		return u.UnmarshalBinary(x)
	default:
		return fmt.Errorf("%w: %T", ErrScanValue, src)
	}
}

// Value implements driver.Valuer, storing the binary form so that database
// byte ordering matches ULID ordering.
func (u ULID) Value() (driver.Value, error) {
	return u.Bytes(), nil
}
