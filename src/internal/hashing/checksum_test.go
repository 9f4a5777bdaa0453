package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
)

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestChecksumReaderProxy_ReadAll(t *testing.T) {
	testData := "Chain INPUT (policy ACCEPT)\n    0     0 ACCEPT all\n"
	proxy := NewMD5ReaderProxy(strings.NewReader(testData))

	content, err := io.ReadAll(proxy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(content) != testData {
		t.Errorf("Expected content to pass through unchanged, got %q", content)
	}
	if proxy.Size() != int64(len(testData)) {
		t.Errorf("Expected size %d, got %d", len(testData), proxy.Size())
	}
	if got := proxy.GetChecksum(); got != md5Hex(testData) {
		t.Errorf("Expected checksum %s, got %s", md5Hex(testData), got)
	}
}

func TestChecksumReaderProxy_ReadError(t *testing.T) {
	readErr := errors.New("read failed")
	proxy := NewMD5ReaderProxy(&errorReader{err: readErr})

	if _, err := io.ReadAll(proxy); !errors.Is(err, readErr) {
		t.Errorf("Expected read error, got %v", err)
	}
	if proxy.Size() != 0 {
		t.Errorf("Expected nothing read, got %d bytes", proxy.Size())
	}
	if got := proxy.GetChecksum(); got != md5Hex("") {
		t.Errorf("Expected checksum of empty input, got %s", got)
	}
}

func TestLinesChecksum(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"empty", nil, md5Hex("")},
		{"one line", []string{"rule1"}, md5Hex("rule1\n")},
		{"two lines", []string{"a", "b"}, md5Hex("a\nb\n")},
		{"blank line", []string{""}, md5Hex("\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinesChecksum(tt.lines); got != tt.want {
				t.Errorf("LinesChecksum(%q) = %s, want %s", tt.lines, got, tt.want)
			}
		})
	}
}

func TestLinesChecksum_OrderAndBoundaries(t *testing.T) {
	if LinesChecksum([]string{"a", "b"}) == LinesChecksum([]string{"b", "a"}) {
		t.Error("Expected order to change the checksum")
	}
	if LinesChecksum([]string{"a", "b"}) == LinesChecksum([]string{"ab"}) {
		t.Error("Expected line boundaries to change the checksum")
	}
}

func TestLineChecksum_Lines(t *testing.T) {
	c := NewLineChecksum()
	c.Put("x")
	c.Put("y")

	if c.Lines() != 2 {
		t.Errorf("Expected 2 lines, got %d", c.Lines())
	}
	if c.GetChecksum() != LinesChecksum([]string{"x", "y"}) {
		t.Error("Expected incremental and bulk checksums to agree")
	}
}
