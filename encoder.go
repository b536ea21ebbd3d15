package stun

// Encoder assembles a STUN message by repeated AddAttribute calls followed
// by a single Finish. It reserves the 20-byte header region up front (its
// final length field unknown), appends each attribute's TLV framing and
// value to a second buffer, and on Finish patches the reserved header
// region in place before splicing the two back together — the same
// reserve/grow-then-patch shape as the teacher's Message.grow plus
// WriteHeader/WriteLength, split across two buffers instead of one mutable
// Message so the header patch never has to shift already-written attribute
// bytes.
type Encoder struct {
	header Header
	head   *Buffer
	attrs  *Buffer
	err    error
}

// NewEncoder starts encoding a message with the given header. dataLength is
// patched in on Finish, so the header's on-the-wire length field need not
// be known (or correct) yet.
func NewEncoder(buf *Buffer, header Header) *Encoder {
	at := buf.Len()
	EncodeInto(buf, header, 0)
	return &Encoder{
		header: header,
		head:   buf,
		attrs:  buf.SplitOff(at + HeaderSize),
	}
}

// AddAttribute encodes one attribute's value via codec, then wraps it in
// its TLV header and pads it to a 4-byte boundary. A failing codec poisons
// the Encoder: AddAttribute and Finish both become no-ops that return the
// first error encountered, so callers can defer error checking to Finish.
func (e *Encoder) AddAttribute(t AttrType, codec AttributeSetter) error {
	if e.err != nil {
		return e.err
	}

	headerAt := e.attrs.Len()
	e.attrs.Reserve(attributeHeaderSize)
	valueAt := e.attrs.Len()

	if err := codec.EncodeValue(e.attrs); err != nil {
		e.err = err
		return err
	}

	length := e.attrs.Len() - valueAt
	if length > 0xffff {
		e.err = ErrInvalidDataSize
		return e.err
	}
	padded := paddedLength(length)
	if pad := padded - length; pad > 0 {
		e.attrs.Append(make([]byte, pad))
	}

	header := e.attrs.Bytes()[headerAt : headerAt+attributeHeaderSize]
	bin.PutUint16(header[0:2], uint16(t))
	bin.PutUint16(header[2:4], uint16(length)) //nolint:gosec // value length is bounds-checked above
	return nil
}

// Finish patches the reserved header region with the final attribute
// section length and splices the two buffers back together, returning the
// complete encoded message. It returns the first error any AddAttribute
// call encountered, if any, or ErrInvalidDataSize if the attribute section
// is too long for the header's 16-bit length field.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	dataLength := e.attrs.Len()
	if dataLength > 0xffff {
		e.err = ErrInvalidDataSize
		return nil, e.err
	}
	headerAt := e.head.Len() - HeaderSize
	writeHeaderBytes(e.head.Bytes()[headerAt:headerAt+HeaderSize], e.header, uint16(dataLength)) //nolint:gosec // dataLength is bounds-checked above
	e.head.Unsplit(e.attrs)
	return e.head.Bytes(), nil
}
