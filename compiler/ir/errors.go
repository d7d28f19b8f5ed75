package ir

import (
	"fmt"
)

type (
	// PinError reports malformed wiring of a terminal.
	PinError struct {
		Pin string
		Err error
	}

	// BuildError reports catalog or attribute inconsistencies
	// and wraps errors with the sub-circuit they originate from.
	BuildError struct {
		Where string
		Err   error
	}

	// NodeError is returned when an element cannot be turned into a node.
	NodeError struct {
		Element string
		Err     error
	}
)

func (e *PinError) Error() string {
	return fmt.Sprintf("pin %v: %v", e.Pin, e.Err)
}

func (e *PinError) Unwrap() error { return e.Err }

func (e *BuildError) Error() string {
	if e.Where == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%v: %v", e.Where, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *NodeError) Error() string {
	return fmt.Sprintf("create node %v: %v", e.Element, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
