package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeInstaller(t *testing.T, name string, content string) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	sum := sha256.Sum256([]byte(content))
	return path, hex.EncodeToString(sum[:])
}

// indexRow renders one well-formed index table row: seven fields after tag
// stripping, filename in the second, hash in the seventh.
func indexRow(filename string, hash string) string {
	return fmt.Sprintf(
		"<tr><td>1</td><td><a href=%q>%s</a></td><td>109.7M</td><td>2026-05-01</td><td>10:00:00</td><td>sh</td><td>%s</td></tr>\n",
		filename, filename, hash)
}

func serveIndex(t *testing.T, body string, status int) *Verifier {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return &Verifier{IndexURL: server.URL}
}

func TestVerifyStructuredMatch(t *testing.T) {
	path, hash := writeInstaller(t, "Miniconda3-latest-Linux-x86_64.sh", "installer payload")
	index := "<html><table>\n" +
		indexRow("Miniconda3-latest-MacOSX-arm64.sh", "0000000000000000") +
		indexRow("Miniconda3-latest-Linux-x86_64.sh", hash) +
		"</table></html>\n"
	v := serveIndex(t, index, http.StatusOK)

	require.NoError(t, v.Verify(context.Background(), path))
	_, err := os.Stat(path)
	require.NoError(t, err, "verified artifact must stay on disk")
}

func TestExpectedHashFirstMatchWins(t *testing.T) {
	index := indexRow("Miniconda3-latest-Linux-x86_64.sh", "aaaa") +
		indexRow("Miniconda3-latest-Linux-x86_64.sh", "bbbb")
	hash, found := expectedHash(index, "Miniconda3-latest-Linux-x86_64.sh")
	require.True(t, found)
	require.Equal(t, "aaaa", hash)
}

func TestExpectedHashSkipsMalformedRows(t *testing.T) {
	index := "<tr><td>Miniconda3-latest-Linux-x86_64.sh</td><td>cccc</td></tr>\n" +
		indexRow("Miniconda3-latest-Linux-x86_64.sh", "dddd")
	hash, found := expectedHash(index, "Miniconda3-latest-Linux-x86_64.sh")
	require.True(t, found)
	require.Equal(t, "dddd", hash)
}

func TestVerifyFallbackSubstringMatch(t *testing.T) {
	path, hash := writeInstaller(t, "Miniconda3-latest-Linux-x86_64.sh", "payload")
	// Format drift: no row parses to the expected field count, but the page
	// still carries the hash.
	index := "<div>Miniconda3-latest-Linux-x86_64.sh checksum " + hash + "</div>\n"
	v := serveIndex(t, index, http.StatusOK)

	require.NoError(t, v.Verify(context.Background(), path))
}

func TestVerifyMismatchDeletesArtifact(t *testing.T) {
	path, _ := writeInstaller(t, "Miniconda3-latest-Linux-x86_64.sh", "tampered payload")
	index := indexRow("Miniconda3-latest-Linux-x86_64.sh", "deadbeef")
	v := serveIndex(t, index, http.StatusOK)

	err := v.Verify(context.Background(), path)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "deadbeef", mismatch.Expected)
	require.NotEmpty(t, mismatch.Actual)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "unverified artifact must be deleted")
}

func TestVerifyMismatchWithoutIndexEntry(t *testing.T) {
	path, _ := writeInstaller(t, "Miniconda3-latest-Linux-x86_64.sh", "payload")
	v := serveIndex(t, "<html>unrelated page</html>", http.StatusOK)

	err := v.Verify(context.Background(), path)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Empty(t, mismatch.Expected)
	require.ErrorContains(t, err, "not listed in index")
}

func TestVerifyIndexFetchFailure(t *testing.T) {
	path, _ := writeInstaller(t, "Miniconda3-latest-Linux-x86_64.sh", "payload")
	v := serveIndex(t, "oops", http.StatusInternalServerError)

	err := v.Verify(context.Background(), path)
	require.ErrorContains(t, err, "checksum index request returned")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "fetch failures must not delete the artifact")
}
