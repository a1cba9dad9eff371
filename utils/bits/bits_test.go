package bits

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testWord struct {
	bits int
	v    uint
}

func bytesToFit(bits int) int {
	if bits%8 == 0 {
		return bits / 8
	}
	return bits/8 + 1
}

func genTestWords(r *rand.Rand, maxCount int, maxBits int) []testWord {
	count := r.Intn(maxCount)
	words := make([]testWord, count)
	for i := range words {
		if maxBits == 1 {
			words[i].bits = 1
		} else {
			words[i].bits = 1 + r.Intn(maxBits-1)
		}
		words[i].v = uint(r.Intn(1 << words[i].bits))
	}
	return words
}

func testBitArray(t *testing.T, words []testWord, name string) {
	arr := Array{make([]byte, 0, 100)}
	writer := NewWriter(&arr)
	reader := NewReader(&arr)

	totalBitsWritten := 0
	for _, w := range words {
		writer.Write(w.bits, w.v)
		totalBitsWritten += w.bits
	}
	assert.EqualValuesf(t, bytesToFit(totalBitsWritten), len(arr.Bytes), "%s: byte length", name)

	totalBitsRead := 0
	for _, w := range words {
		assert.EqualValuesf(t, bytesToFit(totalBitsWritten)*8-totalBitsRead, reader.NonReadBits(), "%s: NonReadBits", name)
		assert.EqualValuesf(t, bytesToFit(reader.NonReadBits()), reader.NonReadBytes(), "%s: NonReadBytes", name)

		v := reader.Read(w.bits)
		assert.EqualValuesf(t, w.v, v, "%s: read value", name)
		totalBitsRead += w.bits

		assert.EqualValuesf(t, bytesToFit(totalBitsWritten)*8-totalBitsRead, reader.NonReadBits(), "%s: NonReadBits", name)
		assert.EqualValuesf(t, bytesToFit(reader.NonReadBits()), reader.NonReadBytes(), "%s: NonReadBytes", name)
	}

	assert.Panicsf(t, func() {
		reader.Read(reader.NonReadBits() + 1)
	}, "%s: read past EOF", name)

	// padding bits of the last byte must be zero
	zero := reader.Read(reader.NonReadBits())
	assert.EqualValuesf(t, uint(0), zero, "%s: padding", name)

	assert.EqualValuesf(t, int(0), reader.NonReadBits(), "%s: bits left", name)
	assert.EqualValuesf(t, int(0), reader.NonReadBytes(), "%s: bytes left", name)
}

func TestBitArrayEmpty(t *testing.T) {
	testBitArray(t, []testWord{}, "empty")
}

func TestBitArrayB0(t *testing.T) {
	testBitArray(t, []testWord{
		{1, 0b0},
	}, "b0")
}

func TestBitArrayB1(t *testing.T) {
	testBitArray(t, []testWord{
		{1, 0b1},
	}, "b1")
}

func TestBitArrayPattern01(t *testing.T) {
	testBitArray(t, []testWord{
		{9, 0b010101010},
	}, "b010101010")
}

func TestBitArrayPatternLong(t *testing.T) {
	testBitArray(t, []testWord{
		{17, 0b01010101010101010},
	}, "b01010101010101010")
}

func TestBitArrayRand1(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBitArray(t, genTestWords(r, 24, 1), fmt.Sprintf("1 bit, case#%d", i))
	}
}

func TestBitArrayRand8(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBitArray(t, genTestWords(r, 100, 8), fmt.Sprintf("8 bits, case#%d", i))
	}
}

func TestBitArrayRand17(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 50; i++ {
		testBitArray(t, genTestWords(r, 50, 17), fmt.Sprintf("17 bits, case#%d", i))
	}
}

func TestBitArrayView(t *testing.T) {
	arr := Array{make([]byte, 0, 10)}
	writer := NewWriter(&arr)
	reader := NewReader(&arr)

	val1 := uint(0xAA)
	val2 := uint(0x55)
	writer.Write(8, val1)
	writer.Write(8, val2)

	assert.EqualValues(t, val1, reader.View(8))
	assert.Equal(t, 16, reader.NonReadBits(), "View must not consume bits")

	assert.EqualValues(t, val1, reader.Read(8))
	assert.Equal(t, 8, reader.NonReadBits())

	assert.EqualValues(t, val2, reader.View(8))
	assert.EqualValues(t, val2, reader.Read(8))
}

func TestBitArrayBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		words []testWord
	}{
		{
			name:  "aligned byte",
			words: []testWord{{8, 0xFF}},
		},
		{
			name:  "byte + 4 bits",
			words: []testWord{{8, 0xFF}, {4, 0xA}},
		},
		{
			name:  "4 bits + byte",
			words: []testWord{{4, 0xA}, {8, 0xFF}},
		},
		{
			name:  "exact 16 bits",
			words: []testWord{{16, 0xFFFF}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			testBitArray(t, tc.words, tc.name)
		})
	}
}

func BenchmarkArray_write(b *testing.B) {
	for bits := 1; bits <= 9; bits++ {
		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			b.ResetTimer()
			arr := Array{make([]byte, 0, bytesToFit(bits*b.N))}
			writer := NewWriter(&arr)
			for i := 0; i < b.N; i++ {
				writer.Write(bits, 0xff)
			}
		})
	}
}

func BenchmarkArray_read(b *testing.B) {
	for bits := 1; bits <= 9; bits++ {
		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			b.ResetTimer()
			arr := Array{make([]byte, bytesToFit(bits*b.N))}
			reader := NewReader(&arr)
			for i := 0; i < b.N; i++ {
				_ = reader.Read(bits)
			}
		})
	}
}
