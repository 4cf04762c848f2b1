package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashFile_SmallFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	content := []byte("Hello, World!")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(testFile)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	sum := sha256.Sum256(content)
	expected := hex.EncodeToString(sum[:])

	if hash != expected {
		t.Errorf("Hash mismatch: expected %s, got %s", expected, hash)
	}
}

func TestHashFile_LargeFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "large.bin")

	// Larger than the streaming buffer
	size := 1024 * 1024
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}

	if err := os.WriteFile(testFile, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(testFile)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	sum := sha256.Sum256(data)
	if hash != hex.EncodeToString(sum[:]) {
		t.Error("Streaming hash should match whole-buffer hash")
	}
}

func TestHashFile_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "empty.txt")

	if err := os.WriteFile(testFile, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	hash, err := HashFile(testFile)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}

	if hash != HashBytes(nil) {
		t.Errorf("Empty file hash should equal hash of no bytes, got %s", hash)
	}
}

func TestHashFile_NonExistent(t *testing.T) {
	_, err := HashFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("HashFile should return error for nonexistent file")
	}
}

func TestHashBytes_Lowercase(t *testing.T) {
	hash := HashBytes([]byte("abc"))
	if len(hash) != 64 {
		t.Fatalf("Expected 64 characters, got %d", len(hash))
	}
	if hash != strings.ToLower(hash) {
		t.Error("HashBytes should produce lowercase hex")
	}
}

func TestCombineHashes_OrderIndependent(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))
	c := HashBytes([]byte("c"))

	combined1 := CombineHashes([]string{a, b, c})
	combined2 := CombineHashes([]string{c, a, b})

	if combined1 != combined2 {
		t.Error("CombineHashes should be independent of input order")
	}
}

func TestCombineHashes_MatchesManualComposition(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))

	sorted := []string{a, b}
	if sorted[0] > sorted[1] {
		sorted[0], sorted[1] = sorted[1], sorted[0]
	}
	expected := HashBytes([]byte(sorted[0] + "|" + sorted[1]))

	if got := CombineHashes([]string{b, a}); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestCombineHashes_Empty(t *testing.T) {
	if got := CombineHashes(nil); got != HashBytes(nil) {
		t.Errorf("Empty combination should be hash of empty string, got %s", got)
	}
}

func TestCombineHashes_DoesNotMutateInput(t *testing.T) {
	hashes := []string{"b", "a", "c"}
	CombineHashes(hashes)
	if hashes[0] != "b" || hashes[1] != "a" || hashes[2] != "c" {
		t.Error("CombineHashes should not reorder the caller's slice")
	}
}

func TestIsValid(t *testing.T) {
	valid := strings.Repeat("a", 64)

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"valid lowercase", valid, true},
		{"valid uppercase", strings.Repeat("A", 64), true},
		{"valid mixed digits", strings.Repeat("0f", 32), true},
		{"not a hash", "not-a-hash", false},
		{"63 characters", valid[:63], false},
		{"65 characters", valid + "a", false},
		{"non-hex character", strings.Repeat("g", 64), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.hash); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.hash, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("ABCDEF"); got != "abcdef" {
		t.Errorf("Expected abcdef, got %s", got)
	}
}

func TestSHA256Func(t *testing.T) {
	out, err := SHA256Func([]byte("test data"))
	if err != nil {
		t.Fatalf("SHA256Func failed: %v", err)
	}
	if len(out) != 32 {
		t.Errorf("Expected 32 bytes, got %d", len(out))
	}
	if hex.EncodeToString(out) != HashBytes([]byte("test data")) {
		t.Error("SHA256Func should agree with HashBytes")
	}
}
