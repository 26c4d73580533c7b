package db

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// List cursors are the concatenation of a 20-digit UTC timestamp
// (YYYYMMDDHHMMSS plus microseconds) and the 10-digit zero-padded row id.
// Plain string comparison of two cursors therefore orders rows by
// (timestamp desc, id desc) when compared descending, which is what the page
// queries rely on.
const (
	cursorTimestampLayout = "20060102150405"
	cursorLength          = 30
)

var ErrInvalidCursor = errors.New("db: invalid cursor")

// EncodeCursor renders the raw (unencoded) cursor for a row.
func EncodeCursor(ts time.Time, id int64) string {
	ts = ts.UTC()
	return fmt.Sprintf("%s%06d%010d", ts.Format(cursorTimestampLayout), ts.Nanosecond()/1000, id)
}

// EncodeCursorToken wraps a raw cursor into the opaque form handed to
// clients.
func EncodeCursorToken(raw string) string {
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursorToken unwraps a client-supplied cursor back to its raw form.
// An empty token means "first page" and decodes to the empty string.
func DecodeCursorToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidCursor
	}

	if len(raw) != cursorLength {
		return "", ErrInvalidCursor
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return "", ErrInvalidCursor
		}
	}

	return string(raw), nil
}

// cursorExpr builds the SQL rendering of the same encoding for the given
// timestamp and id columns. It must stay byte-identical to EncodeCursor.
func cursorExpr(tsColumn, idColumn string) string {
	return fmt.Sprintf(
		"to_char(%s AT TIME ZONE 'UTC', 'YYYYMMDDHH24MISSUS') || lpad(%s::text, 10, '0')",
		tsColumn, idColumn,
	)
}
