package service

import "github.com/google/uuid"

type Owned interface {
	OwnerID() uuid.UUID
}

// canMutate is the single authorization rule for edits and deletes: only
// the author of a resource may change it.
func canMutate(actor uuid.UUID, resource Owned) bool {
	return actor != uuid.Nil && resource.OwnerID() == actor
}
