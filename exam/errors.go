package exam

import "fmt"

// InvalidInputError reports malformed caller input: an empty question set,
// an unknown answer label, or a question that does not belong to the session.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Reason)
}

// BoundaryError reports navigation past the ends of the question sequence.
// Position is the current (unchanged) index, Limit the last valid index.
type BoundaryError struct {
	Position int
	Limit    int
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("position %d is at the boundary (valid range 0..%d)", e.Position, e.Limit)
}

// SessionClosedError reports a mutation attempted after submission.
type SessionClosedError struct {
	StudentID string
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("exam session for student %s is already submitted", e.StudentID)
}

// StorageError wraps a persistence boundary failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrNoActiveSession is returned by the session manager when a student has
// no exam in progress.
var ErrNoActiveSession = fmt.Errorf("no active exam session")
