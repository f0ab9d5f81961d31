package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Conn is a line-oriented terminal over an arbitrary reader and writer.
// Writes are serialized so reply forwarding and command output never
// interleave mid-line.
type Conn struct {
	reader *bufio.Reader
	w      io.Writer
	mu     sync.Mutex
}

// NewConn wraps r and w.
//
// Precondition: r and w must be non-nil.
func NewConn(r io.Reader, w io.Writer) *Conn {
	if r == nil || w == nil {
		panic("console.NewConn precondition violated: reader and writer must be non-nil")
	}
	return &Conn{reader: bufio.NewReaderSize(r, 4096), w: w}
}

// ReadLine reads one line without its terminator. CR, LF, and CRLF all end
// a line; other control characters except tab are dropped.
//
// Postcondition: Returns the next line, or the partial line and an error (including io.EOF).
func (c *Conn) ReadLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := c.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			break
		}
		if b < 32 && b != '\t' {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// WriteLine writes text followed by a newline.
func (c *Conn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "%s\n", text)
	return err
}

// WritePrompt writes prompt without a trailing newline.
func (c *Conn) WritePrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, prompt)
	return err
}
