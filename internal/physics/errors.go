package physics

import "errors"

var (
	// ErrUnsupportedJoint is returned when an engine cannot express a joint kind.
	ErrUnsupportedJoint = errors.New("physics: joint kind not supported by engine")

	// ErrUnknownEngine is returned by New for an unregistered engine name.
	ErrUnknownEngine = errors.New("physics: unknown engine")
)
