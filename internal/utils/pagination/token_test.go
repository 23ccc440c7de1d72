package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	journalDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 4, 1, 9, 15, 30, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journalDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestEncodeDecodeToken_ZeroTimes(t *testing.T) {
	var zero time.Time

	gotDate, gotCreated, err := DecodeToken(EncodeToken(zero, zero))
	require.NoError(t, err)
	assert.True(t, gotDate.IsZero())
	assert.True(t, gotCreated.IsZero())
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// one field only, no separator
	_, _, err = DecodeToken(EncodeMultiFieldToken("2025-04-01T00:00:00Z"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// first field is not a timestamp
	_, _, err = DecodeToken(EncodeMultiFieldToken("notadate", "2025-04-01T09:15:30.123456789Z"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal date parse")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	got, err := DecodeDateBasedToken(EncodeDateBasedToken(date))
	require.NoError(t, err)
	assert.True(t, date.Equal(got))

	now := time.Now().UTC()
	got, err = DecodeDateBasedToken(EncodeDateBasedToken(now))
	require.NoError(t, err)
	assert.True(t, now.Equal(got))
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"pay_01", "2025-04-01T09:15:30.123456789Z"}

	got, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	require.NoError(t, err)
	assert.Equal(t, fields, got)

	// no fields joins to the empty string, which splits back to one empty field
	got, err = DecodeMultiFieldToken(EncodeMultiFieldToken())
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)

	// pipes inside a field shift the split
	got, err = DecodeMultiFieldToken(EncodeMultiFieldToken("a|b", "c"))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
