/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package errors provides error wrapping helpers and the error values
// shared across jtc.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors reported by package generation.
var (
	ErrJuliaNotFound      = stderrors.New("julia not found; install Julia and ensure it is in your PATH")
	ErrInsideGitRepo      = stderrors.New("output directory is inside a git repository")
	ErrPackageNotCreated  = stderrors.New("package directory not created")
	ErrPackageExists      = stderrors.New("package directory already exists")
	ErrInvalidPackageName = stderrors.New("invalid package name")
	ErrNoConfig           = stderrors.New("config not available in context")
)

// Wrap wraps an error with a descriptive action and optional detail.
// It returns a formatted error in the form "failed to <action> [(<detail>)]: <error>".
//
// Example usage:
//
//	if err := runner.Run(ctx, "julia", args...); err != nil {
//	    return errors.Wrap("run julia", script, err)
//	}
func Wrap(action, detail string, err error) error {
	if err == nil {
		return nil
	}

	if detail != "" {
		return fmt.Errorf("failed to %s (%s): %w", action, detail, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// JuliaError reports a failed julia invocation.
type JuliaError struct {
	// Message is the error text extracted from julia's output.
	Message string
	// Hint is an optional remediation shown after the message.
	Hint     string
	ExitCode int
}

// Error implements the error interface.
func (e *JuliaError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("julia exited with status %d", e.ExitCode)
	}
	if e.Hint != "" {
		return msg + "\n" + e.Hint
	}
	return msg
}

// Is, As and New re-export the standard library helpers so callers only
// import one errors package.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)
