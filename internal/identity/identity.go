// Package identity holds the rules for user identifiers: which strings are
// valid ids and when two ids name the same user.
package identity

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether id is a 24-character hexadecimal object id.
func IsValidID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// Normalize trims surrounding space and applies Unicode case folding.
// Ownership comparisons go through this and nothing else.
func Normalize(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

// SameID reports whether a and b identify the same user. Empty ids never match.
func SameID(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

// CanModify reports whether the signed-in user may edit or delete a resource
// owned by ownerID. An anonymous caller (empty id) can modify nothing.
func CanModify(currentUserID, ownerID string) bool {
	return SameID(currentUserID, ownerID)
}
