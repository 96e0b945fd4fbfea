package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrAttributeNotFound       = errors.New("mesh: attribute not found")
	ErrAttributeFormatMismatch = errors.New("mesh: attribute format mismatch")
	ErrMissingIndices          = errors.New("mesh: missing index buffer")
	ErrIndexOverflow           = errors.New("mesh: rebased index does not fit the destination index format")
	ErrInvalidMesh             = errors.New("mesh: invalid mesh")
	ErrUnresolvedJoint         = errors.New("mesh: skin joint could not be resolved")
	ErrBindPoseMismatch        = errors.New("mesh: joint and inverse bind pose counts differ")
	ErrJointIndexOutOfRange    = errors.New("mesh: vertex joint index out of range")
)

// AttributeNotFoundError reports a destination channel that the source mesh lacks.
type AttributeNotFoundError struct {
	Attribute AttributeID
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("mesh: attribute %q in destination mesh not found in source mesh", e.Attribute.Name)
}

func (e *AttributeNotFoundError) Is(target error) bool {
	return target == ErrAttributeNotFound
}

// AttributeFormatError reports a channel stored in a different format than expected.
type AttributeFormatError struct {
	Attribute AttributeID
	Want      VertexFormat
	Got       VertexFormat
}

func (e *AttributeFormatError) Error() string {
	return fmt.Sprintf("mesh: attribute %q stored as %s, expected %s", e.Attribute.Name, e.Got, e.Want)
}

func (e *AttributeFormatError) Is(target error) bool {
	return target == ErrAttributeFormatMismatch
}
