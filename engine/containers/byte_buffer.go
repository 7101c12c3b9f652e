package containers

import (
	"encoding/binary"
	"math"

	"github.com/spaghettifunk/idraw/engine/core"
)

const defaultByteBufferCapacity = 1024

// ByteBuffer is a growable little-endian byte stream with an independent read
// cursor. Writes always append at the end of the written region; reads start
// at the cursor and never cross the written size.
type ByteBuffer struct {
	data     []byte
	position int
}

func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity <= 0 {
		capacity = defaultByteBufferCapacity
	}
	return &ByteBuffer{data: make([]byte, 0, capacity)}
}

// Size is the number of bytes written.
func (b *ByteBuffer) Size() int {
	return len(b.data)
}

// Capacity is the allocated storage. It never shrinks.
func (b *ByteBuffer) Capacity() int {
	return cap(b.data)
}

// Position is the read cursor.
func (b *ByteBuffer) Position() int {
	return b.position
}

func (b *ByteBuffer) Empty() bool {
	return len(b.data) == 0
}

// Remaining is the number of written bytes not yet read.
func (b *ByteBuffer) Remaining() int {
	return len(b.data) - b.position
}

// Bytes returns the written region. The slice aliases the buffer storage and
// is only valid until the next write or Clear.
func (b *ByteBuffer) Bytes() []byte {
	return b.data
}

// Clear drops the written data and rewinds the cursor. Capacity is kept.
func (b *ByteBuffer) Clear() {
	b.data = b.data[:0]
	b.position = 0
}

func (b *ByteBuffer) SeekToBeginning() {
	b.position = 0
}

// Grow makes sure n more bytes can be written without reallocating.
func (b *ByteBuffer) Grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	newCap := cap(b.data) * 2
	if newCap < len(b.data)+n {
		newCap = len(b.data) + n
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

func (b *ByteBuffer) WriteU8(v uint8) {
	b.data = append(b.data, v)
}

func (b *ByteBuffer) WriteU16(v uint16) {
	b.data = binary.LittleEndian.AppendUint16(b.data, v)
}

func (b *ByteBuffer) WriteU32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

func (b *ByteBuffer) WriteI32(v int32) {
	b.WriteU32(uint32(v))
}

func (b *ByteBuffer) WriteF32(v float32) {
	b.WriteU32(math.Float32bits(v))
}

func (b *ByteBuffer) WriteF32s(v ...float32) {
	b.Grow(len(v) * 4)
	for _, f := range v {
		b.WriteF32(f)
	}
}

// WriteBulk appends raw bytes.
func (b *ByteBuffer) WriteBulk(p []byte) {
	b.data = append(b.data, p...)
}

// Write appends any fixed-size value in little-endian order.
func Write[T any](b *ByteBuffer, v T) {
	out, err := binary.Append(b.data, binary.LittleEndian, v)
	if err != nil {
		core.Fatal(err, "byte buffer: value of type %T has no fixed size", v)
	}
	b.data = out
}

// Read decodes a fixed-size value at the cursor and advances past it.
func Read[T any](b *ByteBuffer) T {
	var v T
	size := binary.Size(v)
	if size < 0 {
		core.Fatal(core.ErrUnknown, "byte buffer: value of type %T has no fixed size", v)
	}
	b.check(size)
	if _, err := binary.Decode(b.data[b.position:], binary.LittleEndian, &v); err != nil {
		core.Fatal(err, "byte buffer: decode %T", v)
	}
	b.position += size
	return v
}

// Next returns a view of the next n bytes and advances the cursor.
func (b *ByteBuffer) Next(n int) []byte {
	b.check(n)
	p := b.data[b.position : b.position+n : b.position+n]
	b.position += n
	return p
}

func (b *ByteBuffer) ReadU8() uint8 {
	return b.Next(1)[0]
}

func (b *ByteBuffer) ReadU16() uint16 {
	return binary.LittleEndian.Uint16(b.Next(2))
}

func (b *ByteBuffer) ReadU32() uint32 {
	return binary.LittleEndian.Uint32(b.Next(4))
}

func (b *ByteBuffer) ReadI32() int32 {
	return int32(b.ReadU32())
}

func (b *ByteBuffer) ReadF32() float32 {
	return math.Float32frombits(b.ReadU32())
}

// ReadBulk copies len(dst) bytes into dst.
func (b *ByteBuffer) ReadBulk(dst []byte) {
	copy(dst, b.Next(len(dst)))
}

func (b *ByteBuffer) check(n int) {
	if n < 0 || b.position+n > len(b.data) {
		core.Fatal(core.ErrBufferOverread, "read %d bytes at %d of %d", n, b.position, len(b.data))
	}
}
