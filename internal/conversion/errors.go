package conversion

import (
	"errors"
	"fmt"
)

var (
	ErrNoImages         = errors.New("no images provided for conversion")
	ErrInvalidSizeLimit = errors.New("size limit must be a positive number of megabytes")
)

// Stage names a step of a conversion run.
type Stage string

const (
	StageLoad      Stage = "load"
	StageDecode    Stage = "decode"
	StageEncode    Stage = "encode"
	StageAssemble  Stage = "assemble"
	StageCompleted Stage = "completed"
)

// RunError reports which image and stage stopped a conversion run.
type RunError struct {
	Stage Stage
	Index int
	Name  string
	Err   error
}

func (e *RunError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s failed for image %d (%s): %v", e.Stage, e.Index+1, e.Name, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new run error
func NewRunError(stage Stage, index int, name string, err error) *RunError {
	return &RunError{
		Stage: stage,
		Index: index,
		Name:  name,
		Err:   err,
	}
}
