// Package loadfile reads benchmark input files fully into freshly
// allocated buffers, with optional 64-byte alignment of the backing
// array so cache-line effects are comparable across runs.
package loadfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"
)

const alignment = 64

// Read reads exactly n bytes from the file at path into a fresh buffer.
// Short reads are retried; running out of data before n bytes is an
// error, as is any underlying read failure.
func Read(path string, n int64) ([]byte, error) {
	if n < 0 || n > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("%s: declared length %d out of range", path, n)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	got, err := io.ReadFull(f, buf)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: file shorter than expected (%d B < %d B)", path, got, n)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Elements16 reads n bytes from path and decodes them as little-endian
// 16-bit elements. A trailing odd byte is dropped. When aligned is set,
// the returned slice starts on a 64-byte boundary.
func Elements16(path string, n int64, aligned bool) ([]uint16, error) {
	buf, err := Read(path, n)
	if err != nil {
		return nil, err
	}

	count := len(buf) / 2
	out := alloc16(count, aligned)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return out, nil
}

// alloc16 allocates count elements, over-allocating and re-slicing when
// the backing array must sit on a 64-byte boundary.
func alloc16(count int, aligned bool) []uint16 {
	if !aligned {
		return make([]uint16, count)
	}
	raw := make([]uint16, count+alignment/2)
	off := 0
	if rem := uintptr(unsafe.Pointer(unsafe.SliceData(raw))) % alignment; rem != 0 {
		off = int(alignment-rem) / 2
	}
	return raw[off : off+count : off+count]
}
