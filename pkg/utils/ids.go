package utils

import "github.com/gofrs/uuid"

// NormalizeUUID returns the canonical lowercase form of s, or false if s is not a UUID.
func NormalizeUUID(s string) (string, bool) {
	id, err := uuid.FromString(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
