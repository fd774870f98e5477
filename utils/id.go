package utils

import "github.com/google/uuid"

// NewItemID returns a fresh random identifier for a watch item.
func NewItemID() string {
	return uuid.NewString()
}
