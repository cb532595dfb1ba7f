package dto

import "strings"

// Record is one data row of an import file keyed by header name.
type Record struct {
	Line   int // 1-based line in the source file
	Fields map[string]string
}

// Get returns the trimmed value of a column, or "" when the column is absent.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// ImportRequest defines the options of an import run.
type ImportRequest struct {
	Path   string
	DryRun bool // validate and check references without touching the target store
	Reset  bool // truncate the target store first; ignored on dry runs
}
