// Package skerr provides error wrapping that records where an error was
// created or passed along, plus any context strings added on the way up.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//		return skerr.Wrapf(err, "doing something with %q", name)
//	}
//
// The root cause is always available via Unwrap, and errors.As/errors.Is see
// through every layer added here.
package skerr

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// StackTrace is a single frame of a call stack.
type StackTrace struct {
	File string
	Line int
}

func (st StackTrace) String() string {
	return fmt.Sprintf("%s:%d", st.File, st.Line)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Fmt is like fmt.Errorf, but records the call stack.
func Fmt(fmtStr string, args ...interface{}) error {
	return errors.Errorf(fmtStr, args...)
}

// Wrap records the call stack of the caller unless err already carries one.
// Returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return errors.WithStack(err)
}

// Wrapf adds context to err and records the call stack. Returns nil if err is
// nil.
func Wrapf(err error, fmtStr string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); ok {
		return errors.WithMessagef(err, fmtStr, args...)
	}
	return errors.Wrapf(err, fmtStr, args...)
}

// Unwrap returns the root cause of err, i.e. the error that was originally
// passed to Wrap or Wrapf, or the error created by Fmt.
func Unwrap(err error) error {
	return errors.Cause(err)
}

// CallStack returns the frames recorded on err, innermost first. It returns
// nil if nothing in err's chain was created or wrapped by this package.
func CallStack(err error) []StackTrace {
	var st stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if s, ok := e.(stackTracer); ok {
			st = s
		}
	}
	if st == nil {
		return nil
	}
	frames := st.StackTrace()
	rv := make([]StackTrace, 0, len(frames))
	for _, f := range frames {
		line, err := strconv.Atoi(fmt.Sprintf("%d", f))
		if err != nil {
			continue
		}
		rv = append(rv, StackTrace{File: fmt.Sprintf("%s", f), Line: line})
	}
	return rv
}
