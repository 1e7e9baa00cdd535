package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported by Unmarshal.
const (
	CodeParseError    = "parse_error"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidType   = "invalid_type"
	CodeUnionMismatch = "union_mismatch"
)

// Issue is a single validation failure, located by a JSON Pointer path.
type Issue struct {
	Path    string
	Code    string
	Message string
	Cause   error
}

// Issues collects every violation found in one document. It implements
// error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	var b strings.Builder
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(&b, "%s at %s: %s", it.Code, pointer(it.Path), it.Message)
	}
	if len(iss) > lim {
		fmt.Fprintf(&b, "; ... (%d total)", len(iss))
	}
	return b.String()
}

// AsIssues extracts Issues from err when it carries any.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
