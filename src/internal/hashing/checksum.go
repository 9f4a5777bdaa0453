package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// ChecksumReaderProxy calculates the MD5 checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader   io.Reader
	checksum hash.Hash
	size     int64
}

// NewMD5ReaderProxy wraps reader.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.checksum.Write(buf[:n])
		p.size += int64(n)
	}
	return n, err
}

// Size returns the number of bytes read so far.
func (p *ChecksumReaderProxy) Size() int64 {
	return p.size
}

// GetChecksum returns the MD5 of everything read so far as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() string {
	return hex.EncodeToString(p.checksum.Sum(nil))
}

// LineChecksum accumulates the MD5 of an ordered sequence of lines.
// Each line is hashed with a trailing newline, so ["a", "b"] and ["ab"] differ.
type LineChecksum struct {
	checksum hash.Hash
	lines    int
}

func NewLineChecksum() *LineChecksum {
	return &LineChecksum{checksum: md5.New()}
}

func (c *LineChecksum) Put(line string) {
	io.WriteString(c.checksum, line)
	c.checksum.Write([]byte{'\n'})
	c.lines++
}

// Lines returns how many lines were put.
func (c *LineChecksum) Lines() int {
	return c.lines
}

func (c *LineChecksum) GetChecksum() string {
	return hex.EncodeToString(c.checksum.Sum(nil))
}

// LinesChecksum is the checksum of lines in order.
func LinesChecksum(lines []string) string {
	c := NewLineChecksum()
	for _, line := range lines {
		c.Put(line)
	}
	return c.GetChecksum()
}
