package domain

import "fmt"

// DataUnavailableError reports that the corpus store could not be read.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable: %s: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ConfigurationError reports an unsupported family or hyperparameter value.
type ConfigurationError struct {
	Family string
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Family != "" && e.Param != "":
		return fmt.Sprintf("configuration: %s: parameter %s: %s", e.Family, e.Param, e.Reason)
	case e.Family != "":
		return fmt.Sprintf("configuration: %s: %s", e.Family, e.Reason)
	default:
		return fmt.Sprintf("configuration: %s", e.Reason)
	}
}

// InsufficientDataError reports an empty dataset or partition.
type InsufficientDataError struct {
	What string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s", e.What)
}

// ConflictError reports a uniqueness violation at ingestion.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %q already exists", e.Field, e.Value)
}

// MissingFieldError reports a required article field that was absent from a payload or page.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}
