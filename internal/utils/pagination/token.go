// Package pagination implements the opaque keyset cursor used by the journal
// and account-activity listings. A token encodes the (journal date, created
// at) pair of the last row a page returned; the next page resumes strictly
// after that pair, so inserts between requests never shift earlier pages.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// RFC3339Nano keeps the created_at tie-breaker exact through a round trip.
const cursorTimeFormat = time.RFC3339Nano

const cursorSeparator = "|"

// EncodeToken renders a keyset pair as an opaque base64 token. Callers treat
// the token as a black box; only DecodeToken understands its layout.
func EncodeToken(journalDate time.Time, createdAt time.Time) string {
	pair := journalDate.Format(cursorTimeFormat) + cursorSeparator + createdAt.Format(cursorTimeFormat)
	return base64.StdEncoding.EncodeToString([]byte(pair))
}

// DecodeToken recovers the keyset pair from a token produced by EncodeToken.
// Any malformed input is an error; a truncated or hand-edited token must not
// silently restart the listing.
func DecodeToken(token string) (time.Time, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(raw), cursorSeparator, 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (missing separator)")
	}

	journalDate, err := time.Parse(cursorTimeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (journal date): %w", err)
	}
	createdAt, err := time.Parse(cursorTimeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (created at): %w", err)
	}

	return journalDate, createdAt, nil
}
