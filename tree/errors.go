package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors reported in strict mode. Lenient parsing never returns them.
var (
	ErrEmptyTree         = errors.New("empty tree")
	ErrUnbalanced        = errors.New("unbalanced brackets")
	ErrMismatchedBracket = errors.New("mismatched bracket")
	ErrDanglingLabel     = errors.New("label not followed by whitespace")
	ErrStrayText         = errors.New("text outside a constituent")
	ErrMultipleRoots     = errors.New("more than one root constituent")
)

// SyntaxError locates a strict-mode violation in the input line.
// Offset is a byte offset into the line.
type SyntaxError struct {
	Offset int
	Err    error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("offset %d: %v: %s", e.Offset, e.Err, e.Detail)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
