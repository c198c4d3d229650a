package qwalk

import (
	"errors"
	"fmt"
)

// Domain errors of the walk.
var (
	ErrInvalidAngle  = errors.New("qwalk: invalid angle token")
	ErrAngleCount    = errors.New("qwalk: expected two comma separated angles")
	ErrNegativeSteps = errors.New("qwalk: step count must not be negative")
	ErrInvalidConfig = errors.New("qwalk: invalid configuration")
)

/*
InvalidAngleError reports the input token that could not be resolved to an
angle. It unwraps to ErrInvalidAngle.
*/
type InvalidAngleError struct {
	Token string
}

func (e *InvalidAngleError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidAngle, e.Token)
}

func (e *InvalidAngleError) Unwrap() error {
	return ErrInvalidAngle
}
