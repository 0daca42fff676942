// Package security guards the filesystem against untrusted names and input
// sizes: exporter output files (external plugins choose their own names)
// and imported project files.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned when input exceeds the allowed size.
var ErrSizeLimit = errors.New("size limit exceeded")

// MaxImportSize bounds project files read by import.
const MaxImportSize = 4 << 20

// ValidateFilePath validates a generated file name to prevent directory
// traversal out of baseDir.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	// Check for dangerous patterns
	for _, part := range strings.FieldsFunc(filePath, isSeparator) {
		if part == ".." {
			return fmt.Errorf("file path %q contains directory traversal (..) - not allowed", filePath)
		}
	}

	if filepath.IsAbs(filePath) || strings.HasPrefix(filePath, "/") || strings.HasPrefix(filePath, `\`) {
		return fmt.Errorf("absolute file path %q is not allowed", filePath)
	}

	// Ensure the final path would be within baseDir
	cleanFinal := filepath.Clean(filepath.Join(baseDir, filePath))
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("file path %q would escape %s", filePath, baseDir)
	}

	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails rather than truncating silently.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Allow a clean EOF exactly at the limit.
		var probe [1]byte
		if n, err := l.R.Read(probe[:]); n == 0 && err != nil {
			return 0, err
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// ReadAllLimited reads r to the end, failing with ErrSizeLimit past maxBytes.
func ReadAllLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(NewLimitedReader(r, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	return data, nil
}
