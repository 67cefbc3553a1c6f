package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewStorageRef generates an opaque handle for an uploaded file. The actual
// bytes live in an external file store keyed by this reference.
func NewStorageRef() string {
	return fmt.Sprintf("att-%s", uuid.NewString())
}
