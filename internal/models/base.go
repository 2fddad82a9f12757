package models

import "github.com/google/uuid"

// newID keeps a caller supplied identifier and mints a UUID otherwise.
func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
