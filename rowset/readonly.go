package rowset

import (
	"regexp"

	"github.com/rowset/rowset-go/rowset/errors"
)

// readOnlyStmt matches statements that begin with SELECT or WITH, optionally
// preceded by whitespace, line comments, or block comments (which covers
// /*+ ... */ optimizer hints).
var readOnlyStmt = regexp.MustCompile(`(?is)^(?:\s+|--[^\n]*\n|/\*.*?\*/)*(?:select|with)\b`)

// ValidateReadOnly reports whether query passes the read-only gate: only
// SELECT or WITH statements are accepted. It is a purely textual pre-check
// performed before any cursor is opened; a failure carries Kind
// KNotReadOnly.
func ValidateReadOnly(query string) error {
	if !readOnlyStmt.MatchString(query) {
		return errors.ES(errors.OpUnknown, errors.KNotReadOnly, "only SELECT or WITH statements are allowed")
	}
	return nil
}

func validateReadOnly(op errors.Op, query string) error {
	if !readOnlyStmt.MatchString(query) {
		return errors.ES(op, errors.KNotReadOnly, "only SELECT or WITH statements are allowed")
	}
	return nil
}
