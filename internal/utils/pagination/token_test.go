package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/agrisuite/genfin_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		journalDate time.Time
		createdAt   time.Time
	}{
		{
			name:        "date with nanosecond tie-breaker",
			journalDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			createdAt:   time.Date(2025, 3, 15, 14, 30, 45, 123456789, time.UTC),
		},
		{
			name:        "zero values",
			journalDate: time.Time{},
			createdAt:   time.Time{},
		},
		{
			name:        "identical pair",
			journalDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			createdAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := pagination.EncodeToken(tt.journalDate, tt.createdAt)
			require.NotEmpty(t, token)

			journalDate, createdAt, err := pagination.DecodeToken(token)
			require.NoError(t, err)
			assert.True(t, tt.journalDate.Equal(journalDate))
			assert.True(t, tt.createdAt.Equal(createdAt))
		})
	}
}

func TestDecodeToken_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		errPart string
	}{
		{
			name:    "not base64",
			token:   "this is not base64!",
			errPart: "base64",
		},
		{
			name:    "missing separator",
			token:   base64.StdEncoding.EncodeToString([]byte("2025-03-15T00:00:00Z")),
			errPart: "separator",
		},
		{
			name:    "unparseable journal date",
			token:   base64.StdEncoding.EncodeToString([]byte("notadate|2025-03-15T14:30:45.123456789Z")),
			errPart: "journal date",
		},
		{
			name:    "unparseable created at",
			token:   base64.StdEncoding.EncodeToString([]byte("2025-03-15T00:00:00Z|later")),
			errPart: "created at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}
