package stun

// defaultBufferCapacity is the default capacity for a fresh Buffer, chosen
// to fit a header plus a handful of small attributes without reallocating,
// mirroring the teacher's own New() / ernado/buffer default sizing.
const defaultBufferCapacity = 128

// Buffer is an append-only growth buffer satisfying the "buffer interface"
// the wire codec is written against (Reserve/Append/AppendUint16BE,
// SplitOff/Unsplit for the header back-patch pattern). It is a concrete
// struct rather than an interface: the back-patch pattern needs to reslice
// the underlying array directly, and an interface would force an
// allocation-heavy indirection the teacher's own buffer type (vendored at
// github.com/ernado/buffer, a genuine historical dependency of this
// lineage) never pays either.
type Buffer struct {
	B []byte
}

// NewBuffer returns an empty Buffer with capacity reserved up front.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = defaultBufferCapacity
	}
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Bytes returns the buffer's contents. The slice is invalidated by any
// subsequent call that grows the buffer.
func (b *Buffer) Bytes() []byte { return b.B }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// grow extends b by n bytes, all zero, and returns the index the new
// region starts at. Adapted from the teacher's Message.grow: append-based
// capacity growth rather than a pre-sized make, since the final size is
// rarely known up front during attribute writing.
func (b *Buffer) grow(n int) int {
	first := len(b.B)
	last := first + n
	for cap(b.B) < last {
		b.B = append(b.B, 0)
	}
	b.B = b.B[:last]
	clear(b.B[first:last])
	return first
}

// Reserve appends n zero bytes, to be back-patched later via Bytes()[at:].
// Encoder.AddAttribute uses it to carve out each attribute's 4-byte TLV
// header before the value's length is known.
func (b *Buffer) Reserve(n int) { b.grow(n) }

// Append appends p verbatim and returns len(p).
func (b *Buffer) Append(p []byte) int {
	at := b.grow(len(p))
	copy(b.B[at:], p)
	return len(p)
}

// AppendUint16BE appends v as two big-endian bytes.
func (b *Buffer) AppendUint16BE(v uint16) {
	at := b.grow(2)
	bin.PutUint16(b.B[at:], v)
}

// AppendUint32BE appends v as four big-endian bytes.
func (b *Buffer) AppendUint32BE(v uint32) {
	at := b.grow(4)
	bin.PutUint32(b.B[at:], v)
}

// SplitOff detaches the bytes at and after index at into a new Buffer,
// truncating b to its first at bytes. It is the other half of the
// back-patch pattern: the header region stays in b (so it can be patched
// once the attribute section's length is known) while attribute encoding
// proceeds against the returned tail.
func (b *Buffer) SplitOff(at int) *Buffer {
	tail := &Buffer{B: append([]byte(nil), b.B[at:]...)}
	b.B = b.B[:at]
	return tail
}

// Unsplit appends tail's bytes after b's, undoing a prior SplitOff once the
// header region in b has been patched.
func (b *Buffer) Unsplit(tail *Buffer) {
	b.Append(tail.B)
}
