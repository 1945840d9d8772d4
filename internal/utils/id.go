package utils

import "github.com/google/uuid"

// GenerateID returns a random UUID string for records and batch runs.
func GenerateID() string {
	return uuid.NewString()
}
