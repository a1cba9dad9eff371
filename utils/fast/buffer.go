package fast

// Reader is a cursor over a byte slice.
// Not safe for concurrent use. Reads past the end panic.
type Reader struct {
	buf    []byte
	offset int
}

// Writer is an appending byte buffer.
// Not safe for concurrent use.
type Writer struct {
	buf []byte
}

// NewReader wraps bb for sequential reading.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter wraps bb for sequential writing.
// Pass make([]byte, 0, size) to pre-allocate.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends one byte.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends v.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Read consumes the next n bytes.
// The returned slice aliases the underlying buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte consumes one byte.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Position returns the number of consumed bytes.
func (b *Reader) Position() int {
	return b.offset
}

// Bytes returns the whole underlying buffer.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the written content.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty returns true if the reader is fully consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
