package stun

// magicCookie is the fixed value that aids in distinguishing STUN packets
// from packets of other protocols when STUN is multiplexed with those other
// protocols on the same port (RFC 5389 section 6).
const magicCookie = 0x2112A442

// HeaderSize is the size, in bytes, of an encoded STUN header.
const HeaderSize = 20

// Header is the contextual part of a STUN message header: the class,
// method and transaction ID. The magic cookie and attribute-section length
// are protocol bookkeeping the caller never needs to see directly.
type Header struct {
	Class         Class
	Method        Method
	TransactionID TransactionID
}

// EncodeInto appends the 20-byte wire form of h to buf, with dataLength
// written into the length field. The caller supplies dataLength because the
// header codec has no visibility into how many attribute bytes will follow;
// the encoder pipeline (Encoder.Finish) knows the final value and instead
// uses writeHeaderBytes to patch a reserved region in place.
func EncodeInto(buf *Buffer, h Header, dataLength uint16) {
	at := buf.grow(HeaderSize)
	writeHeaderBytes(buf.B[at:at+HeaderSize], h, dataLength)
}

// writeHeaderBytes encodes h and dataLength into dst, which must be exactly
// HeaderSize bytes. Shared by EncodeInto (appending a fresh header) and
// Encoder.Finish (patching a previously reserved placeholder region).
func writeHeaderBytes(dst []byte, h Header, dataLength uint16) {
	_ = dst[:HeaderSize] // bounds check hint, mirrors message.go's WriteHeader
	bin.PutUint16(dst[0:2], EncodeType(MessageType{Class: h.Class, Method: h.Method}))
	bin.PutUint16(dst[2:4], dataLength)
	bin.PutUint32(dst[4:8], magicCookie)
	copy(dst[8:20], h.TransactionID[:])
}

// DecodeHeader decodes the first HeaderSize bytes of b into a Header and the
// verbatim 16-bit length field. b must be at least HeaderSize bytes long;
// DecodeHeader does not check that length against the size of b beyond that
// — cross-validating length against the full enclosing buffer is the
// Decoder façade's job, since only the façade knows how many bytes actually
// follow the header.
func DecodeHeader(b []byte) (Header, uint16, error) {
	if len(b) < HeaderSize {
		return Header{}, 0, ErrUnexpectedEndOfData
	}
	if b[0]&0xc0 != 0 {
		return Header{}, 0, ErrNonZeroStartingBits
	}
	if bin.Uint32(b[4:8]) != magicCookie {
		return Header{}, 0, ErrInvalidMagicCookie
	}
	typ, err := DecodeType(bin.Uint16(b[0:2]))
	if err != nil {
		return Header{}, 0, err
	}
	length := bin.Uint16(b[2:4])
	h := Header{
		Class:         typ.Class,
		Method:        typ.Method,
		TransactionID: TransactionIDFromBytes(b[8:20]),
	}
	return h, length, nil
}
