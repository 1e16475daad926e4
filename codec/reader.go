package codec

import (
	"bytes"
	stderrors "errors"
	"io"

	"github.com/wippyai/bincodec/errors"
)

// Reader wraps an io.ByteReader with position tracking. Every coder read
// advances the position by exactly the number of bytes it consumed, so
// successive values can be decoded off one reader.
type Reader struct {
	r   io.ByteReader
	pos int
}

// NewReader creates a new Reader wrapping the given io.ByteReader.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r, pos: 0}
}

// NewBytesReader creates a Reader over an in-memory byte slice.
func NewBytesReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data), pos: 0}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// ReadByte reads a single byte and advances the position. End of input is
// reported as io.EOF; callers that need an exact byte count use ReadFull.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// ReadFull reads exactly n bytes. Short input yields a truncated error
// carrying the want/have counts.
func (r *Reader) ReadFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errors.Truncated(nil, n, i)
			}
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// ReadRemaining reads all remaining bytes from the reader.
func (r *Reader) ReadRemaining() ([]byte, error) {
	if br, ok := r.r.(*bytes.Reader); ok {
		remaining := br.Len()
		return r.ReadFull(remaining)
	}
	var buf bytes.Buffer
	for {
		b, err := r.ReadByte()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		buf.WriteByte(b)
	}
	return buf.Bytes(), nil
}
