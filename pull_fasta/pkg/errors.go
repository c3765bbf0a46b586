package pullfasta

import (
	"errors"
	"fmt"
	"strings"
)

// FormatError reports input that cannot be turned into a region.
type FormatError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%v: ", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %v: ", e.Line)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErrorf(line int, err error, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CorrelationError reports engine output that does not line up with the
// regions that were sent to it.
type CorrelationError struct {
	Regions int
	Tokens  int
	Msg     string
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("correlation: %v (regions %v, tokens %v)", e.Msg, e.Regions, e.Tokens)
}

// ExternalToolError reports a failed extraction engine run.
type ExternalToolError struct {
	Cmd    string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%v: %v", e.Cmd, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

func withPath(e error, path string) error {
	var fe *FormatError
	if errors.As(e, &fe) && fe.Path == "" {
		fe.Path = path
	}
	return e
}
