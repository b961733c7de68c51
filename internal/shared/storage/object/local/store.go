package local

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"internship-navigator/internal/shared/storage/object"
	"internship-navigator/internal/shared/util"
)

// Store keeps objects on the local filesystem under
// <baseDir>/<user dir key>/<prefix>_<sanitized name>.
type Store struct {
	baseDir string
}

func New(baseDir string) object.ObjectStore {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk and returns the storage key, byte size and
// sniffed content type. The prefix keeps repeated uploads of the same file
// name from clobbering each other.
func (s *Store) Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}

	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}

	dir := filepath.Join(s.baseDir, util.UserDirKey(userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, "", fmt.Errorf("mkdir: %w", err)
	}

	// Sniff the content type from the first 512 bytes, then stitch the
	// sniffed bytes back in front of the remaining body.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", 0, "", fmt.Errorf("read head: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	body := io.MultiReader(bytes.NewReader(head[:n]), r)

	finalName := randomPrefix() + "_" + name
	path := filepath.Join(dir, finalName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, body)
	if err != nil {
		return "", 0, "", fmt.Errorf("write object: %w", err)
	}

	return filepath.Join(util.UserDirKey(userID), finalName), size, contentType, nil
}

// Open opens a stored object for reading. Keys are relative to the base
// directory and must not escape it.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean(storageKey)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("invalid storage key")
	}
	return os.Open(filepath.Join(s.baseDir, clean))
}

func randomPrefix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
