package paths

import (
	"strings"
	"testing"
)

func TestValidatePathString(t *testing.T) {
	if err := ValidatePathString("/etc/hosts", 4096); err != nil {
		t.Fatalf("expected absolute path to pass, got: %v", err)
	}
	if err := ValidatePathString("relative/file.txt", 4096); err != nil {
		t.Fatalf("expected relative path to pass, got: %v", err)
	}
}

func TestValidatePathStringEmpty(t *testing.T) {
	for _, path := range []string{"", "   ", "\t"} {
		if err := ValidatePathString(path, 4096); err == nil {
			t.Fatalf("%q: expected empty path error", path)
		}
	}
}

func TestValidatePathStringNullByte(t *testing.T) {
	err := ValidatePathString("a\x00b", 4096)
	if err == nil || !strings.Contains(err.Error(), "null byte") {
		t.Fatalf("expected null byte error, got: %v", err)
	}
}

func TestValidatePathStringInvalidUTF8(t *testing.T) {
	err := ValidatePathString("bad\xffpath", 4096)
	if err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Fatalf("expected UTF-8 error, got: %v", err)
	}
}

func TestValidatePathStringMaxLength(t *testing.T) {
	long := strings.Repeat("a", 100)
	if err := ValidatePathString(long, 99); err == nil {
		t.Fatal("expected length error")
	}
	if err := ValidatePathString(long, 100); err != nil {
		t.Fatalf("expected path at the limit to pass, got: %v", err)
	}
	// Zero disables the length check.
	if err := ValidatePathString(long, 0); err != nil {
		t.Fatalf("expected no limit with maxLen 0, got: %v", err)
	}
}
