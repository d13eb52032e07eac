package sqlite

import (
	"time"

	"homeoffice/internal/pkg/errs"
)

// instantLayout is fixed width, so for UTC values within years 0000-9999 text order
// equals chronological order and BETWEEN works on the column directly.
const instantLayout = "2006-01-02T15:04:05.000000000Z"

var (
	minInstant = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// encodeInstant formats t for storage. Instants the layout cannot order are rejected.
func encodeInstant(name string, t time.Time) (string, error) {
	if t.Before(minInstant) || t.After(maxInstant) {
		return "", errs.NewValueIsInvalidError(name)
	}
	return t.UTC().Format(instantLayout), nil
}

// encodeBound formats a query bound, clamping it into the storable range. Nothing is
// stored outside that range, so clamping never changes which rows match.
func encodeBound(t time.Time) string {
	switch {
	case t.Before(minInstant):
		t = minInstant
	case t.After(maxInstant):
		t = maxInstant
	}
	return t.UTC().Format(instantLayout)
}

func decodeInstant(value string) (time.Time, error) {
	return time.Parse(instantLayout, value)
}
