package db

import (
	"errors"
	"sort"
	"testing"
	"time"
)

func TestEncodeCursorWidthAndOrder(t *testing.T) {
	base := time.Date(2024, time.March, 5, 12, 30, 45, 123456000, time.UTC)

	cursor := EncodeCursor(base, 7)
	if len(cursor) != cursorLength {
		t.Fatalf("expected %d-digit cursor, got %d (%q)", cursorLength, len(cursor), cursor)
	}
	if cursor != "202403051230451234560000000007" {
		t.Fatalf("unexpected cursor encoding: %q", cursor)
	}

	// String order must equal (timestamp, id) order.
	rows := []struct {
		ts time.Time
		id int64
	}{
		{base, 7},
		{base, 12},
		{base.Add(time.Microsecond), 1},
		{base.Add(-time.Second), 999},
		{base.Add(time.Hour), 3},
	}

	encoded := make([]string, len(rows))
	for i, r := range rows {
		encoded[i] = EncodeCursor(r.ts, r.id)
	}

	byString := append([]string(nil), encoded...)
	sort.Strings(byString)

	byFields := append([]string(nil), encoded...)
	sort.Slice(byFields, func(i, j int) bool {
		a, b := rows[indexOf(t, encoded, byFields[i])], rows[indexOf(t, encoded, byFields[j])]
		if !a.ts.Equal(b.ts) {
			return a.ts.Before(b.ts)
		}
		return a.id < b.id
	})

	for i := range byString {
		if byString[i] != byFields[i] {
			t.Fatalf("string order diverges from (timestamp, id) order at %d: %q vs %q", i, byString[i], byFields[i])
		}
	}
}

func indexOf(t *testing.T, haystack []string, needle string) int {
	t.Helper()
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	t.Fatalf("cursor %q not found", needle)
	return -1
}

func TestCursorTokenRoundTrip(t *testing.T) {
	raw := EncodeCursor(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 42)

	token := EncodeCursorToken(raw)
	if token == raw {
		t.Fatalf("token should be opaque, got raw cursor back")
	}

	decoded, err := DecodeCursorToken(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != raw {
		t.Fatalf("round trip mismatch: %q != %q", decoded, raw)
	}
}

func TestDecodeCursorToken(t *testing.T) {
	if raw, err := DecodeCursorToken(""); err != nil || raw != "" {
		t.Fatalf("empty token must decode to empty cursor, got %q / %v", raw, err)
	}

	if _, err := DecodeCursorToken("%%%not-base64%%%"); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor for bad base64, got %v", err)
	}

	// Valid base64 but wrong shape.
	if _, err := DecodeCursorToken(EncodeCursorToken("short")); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor for short cursor, got %v", err)
	}
	if _, err := DecodeCursorToken(EncodeCursorToken("20240305123045123456000000000x")); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor for non-digit cursor, got %v", err)
	}
}
