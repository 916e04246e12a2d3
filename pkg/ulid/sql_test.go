package ulid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ulidkit/pkg/ulid"
)

func TestScan(t *testing.T) {
	t.Parallel()

	want := ulid.MustParse(refText)

	tests := []struct {
		name    string
		src     any
		want    ulid.ULID
		wantErr error
	}{
		{name: "binary", src: want.Bytes(), want: want},
		{name: "text string", src: refText, want: want},
		{name: "text bytes", src: []byte(refText), want: want},
		{name: "null", src: nil, want: ulid.Zero},
		{name: "short binary", src: []byte{1, 2, 3}, wantErr: ulid.ErrInvalidLength},
		{name: "bad text", src: "01ARYZ6S41TSV4RRFFQ69G5FAL", wantErr: ulid.ErrInvalidCharacter},
		{name: "unsupported type", src: 42, wantErr: ulid.ErrScanValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got ulid.ULID
			err := got.Scan(tt.src)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	id := ulid.MustParse(refText)
	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.Bytes(), v)

	var back ulid.ULID
	require.NoError(t, back.Scan(v))
	assert.Equal(t, id, back)
}
