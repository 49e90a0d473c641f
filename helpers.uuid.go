package main

import (
	"github.com/gofrs/uuid"
)

// GenerateID provides a random unique identifier with a custom prefix.
// It is used to tag each incoming request for log correlation.
func GenerateID(prefix string) string {
	id, _ := uuid.NewV4()
	return prefix + ":" + id.String()
}
