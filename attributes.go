package stun

// AttrType is a 16-bit STUN attribute type tag.
type AttrType uint16

// Attribute type constants supplied for caller convenience. Attribute types
// with the high bit of the first byte set (0x8000 and above) are
// "comprehension-optional" per RFC 5389 section 18.2; this package does not
// distinguish them during decoding.
const (
	AttrMappedAddress    AttrType = 0x0001
	AttrChangeRequest    AttrType = 0x0003
	AttrXORMappedAddress AttrType = 0x0020
	AttrSoftware         AttrType = 0x8022
	AttrResponseOrigin   AttrType = 0x802B
	AttrOtherAddress     AttrType = 0x802C
)

// attributeHeaderSize is the size, in bytes, of an attribute's TLV header
// (2-byte type, 2-byte length), not counting value or padding.
const attributeHeaderSize = 4

// attributePadding is the alignment, in bytes, attribute values are padded
// to (RFC 5389 section 15).
const attributePadding = 4

// paddedLength returns the smallest multiple of attributePadding that is >=
// l, i.e. l rounded up to the next 4-byte boundary.
func paddedLength(l int) int {
	n := attributePadding * (l / attributePadding)
	if n < l {
		n += attributePadding
	}
	return n
}

// RawAttribute is a borrowed view over one TLV-encoded attribute: its type
// tag and its value bytes (padding excluded). Value aliases the Decoder's
// underlying buffer and must not outlive it.
type RawAttribute struct {
	Type  AttrType
	Value []byte
}

// AttributeIterator is a lazy, zero-copy sequence over a borrowed
// attribute-section byte slice.
//
// Once Next returns false after yielding a non-nil Err, the iterator is
// poisoned: all subsequent Next calls return false with no error, so a
// caller who only checks the boolean never silently walks off the end of a
// malformed buffer onto attributes parsed at the wrong offset.
type AttributeIterator struct {
	rest []byte
	attr RawAttribute
	err  error
}

// NewAttributeIterator returns an iterator over attrs, the attribute
// section of a decoded message (the bytes after the 20-byte header).
func NewAttributeIterator(attrs []byte) *AttributeIterator {
	return &AttributeIterator{rest: attrs}
}

// Next advances the iterator. It returns false when the sequence is
// exhausted or poisoned by a prior error; callers must check Err once Next
// returns false to distinguish a clean end from a decode failure.
func (it *AttributeIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if len(it.rest) == 0 {
		return false
	}
	if len(it.rest) < attributeHeaderSize {
		it.err = ErrUnexpectedEndOfData
		it.rest = nil
		return false
	}
	typ := AttrType(bin.Uint16(it.rest[0:2]))
	length := int(bin.Uint16(it.rest[2:4]))
	padded := paddedLength(length)

	body := it.rest[attributeHeaderSize:]
	if len(body) < padded {
		it.err = ErrUnexpectedEndOfData
		it.rest = nil
		return false
	}

	it.attr = RawAttribute{Type: typ, Value: body[:length]}
	it.rest = body[padded:]
	return true
}

// Value returns the attribute yielded by the most recent successful Next
// call.
func (it *AttributeIterator) Value() RawAttribute {
	return it.attr
}

// Err returns the error that poisoned the iterator, or nil if it reached a
// clean end of sequence (or hasn't run yet).
func (it *AttributeIterator) Err() error {
	return it.err
}
