package cser

import (
	"errors"
	"math/big"

	"github.com/rony4d/go-asset-shard/utils/bits"
	"github.com/rony4d/go-asset-shard/utils/fast"
)

var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	ErrMalformedEncoding    = errors.New("malformed encoding")
	ErrTooLargeAlloc        = errors.New("too large allocation")
)

// MaxAlloc limits allocations while decoding untrusted input.
const MaxAlloc = 100 * 1024

// Writer of a canonical serialization. Values are split between a
// bit stream (booleans, size tags) and a byte stream (the data itself).
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader of a canonical serialization.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter returns a writer with pre-allocated streams.
func NewWriter() *Writer {
	bbits := &bits.Array{Bytes: make([]byte, 0, 32)}
	bbytes := make([]byte, 0, 200)
	return &Writer{
		BitsW:  bits.NewWriter(bbits),
		BytesW: fast.NewWriter(bbytes),
	}
}

// writeUint64Compact encodes v as a varint where the top bit of a byte
// marks the last chunk.
func writeUint64Compact(bytesW *fast.Writer, v uint64) {
	for i := 0; ; i++ {
		chunk := v & 0b01111111
		v = v >> 7
		if v == 0 {
			// stop flag
			chunk |= 0b10000000
		}
		bytesW.WriteByte(byte(chunk))
		if v == 0 {
			break
		}
	}
}

func readUint64Compact(bytesR *fast.Reader) uint64 {
	v := uint64(0)
	stop := false
	for i := 0; !stop; i++ {
		chunk := uint64(bytesR.ReadByte())
		stop = (chunk & 0b10000000) != 0
		word := chunk & 0b01111111
		v |= word << (i * 7)
		// a trailing zero chunk means the value was encoded non-minimally
		if i > 0 && stop && word == 0 {
			panic(ErrNonCanonicalEncoding)
		}
	}
	return v
}

// writeUint64BitCompact writes v as little-endian bytes, using the
// smallest representation not shorter than minSize. Returns bytes written.
func writeUint64BitCompact(bytesW *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		bytesW.WriteByte(byte(v))
		size++
		v = v >> 8
	}
	return
}

func readUint64BitCompact(bytesR *fast.Reader, size int) uint64 {
	var (
		v    uint64
		last byte
	)
	buf := bytesR.Read(size)
	for i, b := range buf {
		v |= uint64(b) << uint(8*i)
		last = b
	}
	// a zero top byte means the value was encoded non-minimally
	if size > 1 && last == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return v
}

// readU64_bits reads the byte count from the bit stream,
// then the value from the byte stream.
func (r *Reader) readU64_bits(minSize int, bitsForSize int) uint64 {
	size := r.BitsR.Read(bitsForSize)
	size += uint(minSize)
	return readUint64BitCompact(r.BytesR, int(size))
}

// writeU64_bits writes the value into the byte stream,
// and its byte count into the bit stream.
func (w *Writer) writeU64_bits(minSize int, bitsForSize int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(bitsForSize, uint(size-minSize))
}

// U8 writes uint8
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

// U8 reads uint8
func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U16 writes uint16
func (w *Writer) U16(v uint16) {
	w.writeU64_bits(1, 1, uint64(v))
}

// U16 reads uint16
func (r *Reader) U16() uint16 {
	v64 := r.readU64_bits(1, 1)
	return uint16(v64)
}

// U32 writes uint32
func (w *Writer) U32(v uint32) {
	w.writeU64_bits(1, 2, uint64(v))
}

// U32 reads uint32
func (r *Reader) U32() uint32 {
	v64 := r.readU64_bits(1, 2)
	return uint32(v64)
}

// U64 writes uint64
func (w *Writer) U64(v uint64) {
	w.writeU64_bits(1, 3, v)
}

// U64 reads uint64
func (r *Reader) U64() uint64 {
	return r.readU64_bits(1, 3)
}

// VarUint writes a counter (map/list sizes)
func (w *Writer) VarUint(v uint64) {
	w.writeU64_bits(1, 3, v)
}

// VarUint reads a counter (map/list sizes)
func (r *Reader) VarUint() uint64 {
	return r.readU64_bits(1, 3)
}

// I64 writes int64 as a sign bit plus absolute value
func (w *Writer) I64(v int64) {
	w.Bool(v < 0)
	if v < 0 {
		w.U64(uint64(-v))
	} else {
		w.U64(uint64(v))
	}
}

// I64 reads int64
func (r *Reader) I64() int64 {
	neg := r.Bool()
	abs := r.U64()
	// negative zero is non-canonical
	if neg && abs == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	if neg {
		return -int64(abs)
	}
	return int64(abs)
}

// U56 writes uint56 (slice lengths)
func (w *Writer) U56(v uint64) {
	const max = 1<<(8*7) - 1
	if v > max {
		panic("value too big")
	}
	w.writeU64_bits(0, 3, v)
}

// U56 reads uint56
func (r *Reader) U56() uint64 {
	return r.readU64_bits(0, 3)
}

// Bool writes one bit
func (w *Writer) Bool(v bool) {
	u8 := uint(0)
	if v {
		u8 = 1
	}
	w.BitsW.Write(1, u8)
}

// Bool reads one bit
func (r *Reader) Bool() bool {
	u8 := r.BitsR.Read(1)
	return u8 != 0
}

// FixedBytes writes a fixed-size byte array (no length prefix)
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes reads len(v) bytes into v
func (r *Reader) FixedBytes(v []byte) {
	buf := r.BytesR.Read(len(v))
	copy(v, buf)
}

// SliceBytes writes a length-prefixed byte slice
func (w *Writer) SliceBytes(v []byte) {
	w.U56(uint64(len(v)))
	w.FixedBytes(v)
}

// SliceBytes reads a length-prefixed byte slice of at most maxLen bytes
func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.U56()
	if size > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// PaddedBytes left-pads b with zeros up to n bytes.
func PaddedBytes(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	padding := make([]byte, n-len(b))
	return append(padding, b...)
}

// BigInt writes a non-negative big.Int as its minimal big-endian bytes
func (w *Writer) BigInt(v *big.Int) {
	bigBytes := []byte{}
	if v.Sign() != 0 {
		bigBytes = v.Bytes()
	}
	w.SliceBytes(bigBytes)
}

// BigInt reads a non-negative big.Int
func (r *Reader) BigInt() *big.Int {
	buf := r.SliceBytes(512)
	if len(buf) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(buf)
}
