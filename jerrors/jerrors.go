// Package jerrors carries the error types surfaced by subgraph declaration,
// composition and entity resolution, plus the wire envelope used by the HTTP
// handler.
package jerrors

import (
	"errors"
	"fmt"
)

// Error is the GraphQL response error envelope.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// DuplicateAnnotation reports a conflicting federation annotation on a type or
// field. It is raised at declaration time, before any schema is built.
type DuplicateAnnotation struct {
	Type       string
	Field      string // empty for type-level annotations (key, extend)
	Annotation string
}

func (e *DuplicateAnnotation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("duplicate %s annotation on type %s", e.Annotation, e.Type)
	}
	return fmt.Sprintf("duplicate %s annotation on field %s of type %s", e.Annotation, e.Field, e.Type)
}

// NoEntities reports that entity resolution was requested against a schema
// that declares no federation entities.
type NoEntities struct{}

func (e *NoEntities) Error() string {
	return "schema declares no federation entities"
}

// UnknownType reports a representation whose __typename does not name a
// declared entity type. It aborts the whole _entities call.
type UnknownType struct {
	TypeName string
}

func (e *UnknownType) Error() string {
	if e.TypeName == "" {
		return "representation is missing __typename"
	}
	return fmt.Sprintf("unknown entity type %q", e.TypeName)
}

// ConvertError maps an internal error onto the response envelope.
func ConvertError(err error) *Error {
	var dup *DuplicateAnnotation
	var none *NoEntities
	var unknown *UnknownType
	switch {
	case errors.As(err, &dup):
		return &Error{Message: err.Error(), Code: "DUPLICATE_ANNOTATION"}
	case errors.As(err, &none):
		return &Error{Message: err.Error(), Code: "NO_ENTITIES"}
	case errors.As(err, &unknown):
		return &Error{Message: err.Error(), Code: "UNKNOWN_ENTITY_TYPE"}
	}
	return &Error{Message: err.Error()}
}
