package core

import (
	"github.com/google/uuid"
)

// Identifier is an opaque handle to an entity owned by the host, such as a
// scene node used as a skeleton joint.
type Identifier = uuid.UUID

// InvalidID is the zero identifier. It is never handed out by IdentifierNew.
var InvalidID Identifier = uuid.Nil

func IdentifierNew() Identifier {
	return uuid.New()
}

// IdentifierFromString parses the textual form produced by Identifier.String.
func IdentifierFromString(s string) (Identifier, error) {
	return uuid.Parse(s)
}

func IdentifierIsValid(id Identifier) bool {
	return id != InvalidID
}
