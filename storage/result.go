package storage

import (
	apperrors "github.com/kbukum/fobstore/errors"
)

// Status classifies the outcome of a storage call.
type Status int

const (
	// StatusOK means the call succeeded.
	StatusOK Status = iota
	// StatusAbsent means the item does not exist.
	StatusAbsent
	// StatusFailed means the backend could not complete the call.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a FOB call. Data is set for successful reads.
type Result struct {
	Status Status
	Data   []byte
	Err    error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Status == StatusOK }

func resultOf(data []byte, err error) Result {
	switch {
	case err == nil:
		return Result{Status: StatusOK, Data: data}
	case apperrors.IsNotFound(err):
		return Result{Status: StatusAbsent, Err: err}
	default:
		return Result{Status: StatusFailed, Err: err}
	}
}
