package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind categorizes a per-file failure.
type ErrorKind int

const (
	// ErrorKindReadFailure means the file could not be read.
	ErrorKindReadFailure ErrorKind = iota
	// ErrorKindMalformedInput means the file is not valid JSON.
	ErrorKindMalformedInput
	// ErrorKindStructureTooDeep means nesting exceeded the depth limit.
	ErrorKindStructureTooDeep
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindReadFailure:
		return "read_failure"
	case ErrorKindMalformedInput:
		return "malformed_input"
	case ErrorKindStructureTooDeep:
		return "structure_too_deep"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its String form.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its String form.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "read_failure":
		*k = ErrorKindReadFailure
	case "malformed_input":
		*k = ErrorKindMalformedInput
	case "structure_too_deep":
		*k = ErrorKindStructureTooDeep
	default:
		return fmt.Errorf("unknown error kind %q", text)
	}
	return nil
}

// FileError is a failure confined to one file. The batch it belongs to
// keeps running.
type FileError struct {
	File string
	Kind ErrorKind
	Err  error
}

// NewFileError creates a FileError.
func NewFileError(file string, kind ErrorKind, err error) *FileError {
	return &FileError{File: file, Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Message returns the underlying error text.
func (e *FileError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// fileErrorJSON is the wire form of FileError.
type fileErrorJSON struct {
	File    string    `json:"file"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// MarshalJSON encodes the error with its message as a string.
func (e *FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileErrorJSON{File: e.File, Kind: e.Kind, Message: e.Message()})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The underlying
// error is restored as a plain error carrying the message.
func (e *FileError) UnmarshalJSON(data []byte) error {
	var raw fileErrorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.File = raw.File
	e.Kind = raw.Kind
	e.Err = errors.New(raw.Message)
	return nil
}
