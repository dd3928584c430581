package uploads

import (
	"errors"
	"fmt"
)

// Stage is a step of the upload pipeline. A run moves through the stages in
// declaration order and ends in either StageCompleted or StageFailed.
type Stage int

const (
	StageReceived Stage = iota
	StageRenamed
	StageValidated
	StageProbed
	StageThumbnailed
	StageRemoteAssetsUploaded
	StagePersisted
	StageCleanedUp
	StageCompleted
	StageFailed
)

var stageNames = [...]string{
	StageReceived:             "received",
	StageRenamed:              "renamed",
	StageValidated:            "validated",
	StageProbed:               "probed",
	StageThumbnailed:          "thumbnailed",
	StageRemoteAssetsUploaded: "remote_assets_uploaded",
	StagePersisted:            "persisted",
	StageCleanedUp:            "cleaned_up",
	StageCompleted:            "completed",
	StageFailed:               "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ErrorKind classifies why a run failed. The HTTP layer maps kinds to status codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindExternalService
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindNotFound:
		return "NotFound"
	case KindExternalService:
		return "ExternalService"
	default:
		return "Internal"
	}
}

// StageError is returned by a failed run. Stage is the step that was being
// attempted when the run failed.
type StageError struct {
	Err   error
	Stage Stage
	Kind  ErrorKind
}

func (e *StageError) Error() string {
	return fmt.Sprintf("upload failed at %s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, kind ErrorKind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal if err is not a StageError.
func KindOf(err error) ErrorKind {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind
	}
	return KindInternal
}
