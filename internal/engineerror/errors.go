// Package engineerror defines the error taxonomy of the finance engine.
package engineerror

import "fmt"

// ValidationError reports invalid user input. The operation that raised it
// is a no-op: no partial state is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist at mutation
// time. It is never fatal; deletes treat it as a benign no-op.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// PersistenceError reports a failed read or write against the external
// store. The in-memory state is not rolled back when it occurs; the next
// load plus reconciliation is the recovery path.
type PersistenceError struct {
	Op      string
	UserKey string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for user '%s': %v", e.Op, e.UserKey, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
