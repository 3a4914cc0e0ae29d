// Package envlist queries and parses the runtime's environment listing into a
// normalized name/path structure. The raw output is free-form tabular text
// whose column alignment drifts across tools and versions, so extraction is
// isolated here behind a parser tested against captured samples.
package envlist

import (
	"context"
	"strings"
	"unicode"

	"github.com/montgomerylab/tinyrna-setup/internal/condatool"
)

// Record is one environment from the listing. Name may be empty for
// anonymous prefix-only environments.
type Record struct {
	Name string
	Path string
}

// Runner runs the listing subcommand and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// List invokes the tool's environment-listing subcommand and parses the
// result. The listing is queried fresh on every call; environment existence
// changes between provisioning steps and must never be cached.
func List(ctx context.Context, runner Runner, tool condatool.Tool) ([]Record, error) {
	out, err := runner.Output(ctx, tool.Path, tool.EnvListArgs()...)
	if err != nil {
		return nil, err
	}
	return Parse(string(out)), nil
}

// Contains reports whether a record with the given name is present.
func Contains(records []Record, name string) bool {
	for _, record := range records {
		if record.Name == name {
			return true
		}
	}
	return false
}

// Parse extracts (name, path) pairs from raw listing text.
//
// No tool guarantees a column width, so the boundary between the name column
// and the path column is inferred: across all lines, the most frequent
// character offset of the first path separator is taken as the start of the
// path column. Lines whose character at that offset is a path separator yield
// one record; headers and blank lines fall out naturally.
func Parse(raw string) []Record {
	lines := strings.Split(raw, "\n")

	counts := make(map[int]int)
	for _, line := range lines {
		if idx := strings.IndexByte(line, '/'); idx >= 0 {
			counts[idx]++
		}
	}
	boundary := -1
	best := 0
	for idx, n := range counts {
		if n > best || (n == best && (boundary < 0 || idx < boundary)) {
			boundary = idx
			best = n
		}
	}
	if boundary < 0 {
		return nil
	}

	var records []Record
	for _, line := range lines {
		if boundary >= len(line) || line[boundary] != '/' {
			continue
		}
		name := strings.TrimFunc(line[:boundary], func(r rune) bool {
			return unicode.IsSpace(r) || r == '*'
		})
		path := strings.TrimSpace(line[boundary:])
		records = append(records, Record{Name: name, Path: path})
	}
	return records
}
