package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// UserDirKey maps a user ID to a fixed-width, filesystem-safe directory name.
// User IDs may contain separators (e.g. "google:12345"), so they are never
// used on disk directly.
func UserDirKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:16])
}
