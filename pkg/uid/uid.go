package uid

import "github.com/google/uuid"

// New returns a fresh unique identifier for domain entities.
// Entity ids are opaque strings; callers must not parse them.
func New() string {
	return uuid.New().String()
}
