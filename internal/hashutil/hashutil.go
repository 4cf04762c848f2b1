package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const bufferSize = 32 * 1024 // 32KB buffer for streaming

// Separator joins sorted child hashes before hashing a directory.
const Separator = "|"

// HashFile computes the SHA-256 of a file's content, streaming so large
// files are not held in memory, and returns it as 64 lowercase hex chars.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	buf := make([]byte, bufferSize)

	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the SHA-256 of data as 64 lowercase hex characters.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CombineHashes computes a directory hash from its children's hashes:
// sort the hash strings lexicographically, join with Separator, SHA-256
// the result. Sorting by hash value keeps the digest independent of
// filesystem listing order. An empty slice yields SHA-256 of "".
func CombineHashes(hashes []string) string {
	sorted := make([]string, len(hashes))
	copy(sorted, hashes)
	sort.Strings(sorted)
	return HashBytes([]byte(strings.Join(sorted, Separator)))
}

// IsValid reports whether s is exactly 64 hex characters (either case).
func IsValid(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Normalize lowercases a hash string. Callers validate with IsValid first.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// SHA256Func is a hash function adapter for go-merkletree.
func SHA256Func(data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}
