package services

import (
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// validUserID reports whether id has the 24-hex identifier shape.
func validUserID(id string) bool {
	return hexIDPattern.MatchString(id)
}

// validDate reports whether s is a real calendar date in canonical
// "YYYY-MM-DD" form. time.Parse rejects impossible days (2023-02-29); the
// round-trip comparison rejects non-canonical spellings like "2024-1-05".
func validDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}
