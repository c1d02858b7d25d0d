// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedList       = errors.New("malformed structured list")
	ErrInvalidAttribute    = errors.New("invalid attribute")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDuplicateID         = errors.New("duplicate identifier")
	ErrNameCollision       = errors.New("normalized name collision")
	ErrMissingLinkage      = errors.New("missing comm relation")
	ErrAmbiguousLinkage    = errors.New("ambiguous comm relation")
	ErrUnsupportedEndpoint = errors.New("unsupported relation endpoint")
)

// NodeError ties a failure to the element that caused it.
type NodeError struct {
	Kind Kind
	ID   string
	Err  error
}

// Errorf builds a NodeError wrapping err with additional context.
func Errorf(kind Kind, id string, err error, format string, args ...any) *NodeError {
	return &NodeError{Kind: kind, ID: id, Err: fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))}
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.Kind, e.ID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// ValidationErrors aggregates every problem found in one pass over a model.
type ValidationErrors struct {
	Errors []error
}

// Add records a problem.
func (ve *ValidationErrors) Add(err error) {
	if err != nil {
		ve.Errors = append(ve.Errors, err)
	}
}

// HasErrors reports whether any problem was recorded.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Err returns nil when no problem was recorded, and the aggregate otherwise.
func (ve *ValidationErrors) Err() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (ve *ValidationErrors) Unwrap() []error {
	return ve.Errors
}

// FormatStderr renders one "error:" line per problem.
func (ve *ValidationErrors) FormatStderr() string {
	var sb strings.Builder
	for _, e := range ve.Errors {
		fmt.Fprintf(&sb, "error: %s\n", e.Error())
	}
	return sb.String()
}
