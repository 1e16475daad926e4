package codec

import "io"

// Writer wraps an io.Writer with a running byte count.
type Writer struct {
	w io.Writer
	n int
}

// NewWriter creates a new Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Count returns the total number of bytes written so far.
func (w *Writer) Count() int {
	return w.n
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	if bw, ok := w.w.(io.ByteWriter); ok {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
		w.n++
		return nil
	}
	_, err := w.Write([]byte{b})
	return err
}

// Write writes a byte slice.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += n
	return n, err
}
