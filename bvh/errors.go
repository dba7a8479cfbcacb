package bvh

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF        = errors.New("unexpected end of file")
	ErrMalformedBlock       = errors.New("malformed block")
	ErrMalformedJoint       = errors.New("malformed joint declaration")
	ErrMalformedOffset      = errors.New("malformed offset")
	ErrNumberFormat         = errors.New("invalid number")
	ErrUnknownChannelType   = errors.New("unknown channel type")
	ErrChannelCount         = errors.New("channel count mismatch")
	ErrMalformedEndSite     = errors.New("malformed end site")
	ErrUnbalancedBraces     = errors.New("unbalanced braces")
	ErrMultipleRoots        = errors.New("multiple root joints")
	ErrNoRoot               = errors.New("no root joint")
	ErrMissingMotionSection = errors.New("missing MOTION section")
	ErrMalformedFrameCount  = errors.New("malformed frame count")
	ErrMalformedFrameTime   = errors.New("malformed frame time")
	ErrFrameColumnMismatch  = errors.New("frame column count mismatch")
	ErrFrameOutOfRange      = errors.New("frame out of range")
	ErrUnrecognizedKeyword  = errors.New("unrecognized keyword")
)

// ParseError describes a structural error at a line of the input.
// Err is one of the Err* values above.
type ParseError struct {
	Line   int // 1-based
	Text   string
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %v", e.Line, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
