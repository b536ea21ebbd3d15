package stun

// Decoder is a read-only façade over a complete, already-received STUN
// message. It decodes the header eagerly (cheap, fixed-size, and needed to
// validate the buffer before anything else can be trusted) and leaves
// attribute decoding lazy, handed off to AttributeIterator on request — the
// same eager-header/lazy-attributes split as the teacher's Message.Decode,
// without the mutable shared Message state.
type Decoder struct {
	header Header
	attrs  []byte
}

// DecoderOption configures NewDecoder.
type DecoderOption func(*decoderConfig)

type decoderConfig struct {
	strictLengthCheck bool
}

// WithoutStrictLengthCheck disables cross-validation of the header's stated
// length against the number of bytes actually following it. Only
// meaningful for callers that frame messages some other way than "one
// datagram, one message"; every entry point in this repository reads one
// UDP datagram per message and leaves the default (strict) in place.
func WithoutStrictLengthCheck() DecoderOption {
	return func(c *decoderConfig) { c.strictLengthCheck = false }
}

// NewDecoder validates and decodes b as a complete STUN message. By
// default it enforces that the header's stated length exactly matches the
// bytes following the header: neither truncated (ErrLengthExceedsSlice)
// nor trailer-padded (ErrSliceExceedsLength); pass WithoutStrictLengthCheck
// to relax that.
func NewDecoder(b []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg := decoderConfig{strictLengthCheck: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	header, length, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}
	rest := b[HeaderSize:]
	if cfg.strictLengthCheck {
		switch {
		case int(length) > len(rest):
			return nil, ErrLengthExceedsSlice
		case int(length) < len(rest):
			return nil, ErrSliceExceedsLength
		}
	} else if int(length) <= len(rest) {
		rest = rest[:length]
	}
	return &Decoder{header: header, attrs: rest}, nil
}

// Header returns the decoded header.
func (d *Decoder) Header() Header { return d.header }

// Class returns the message's class.
func (d *Decoder) Class() Class { return d.header.Class }

// Method returns the message's method.
func (d *Decoder) Method() Method { return d.header.Method }

// TransactionID returns the message's transaction ID.
func (d *Decoder) TransactionID() TransactionID { return d.header.TransactionID }

// Attributes returns a fresh iterator over the message's attribute section.
func (d *Decoder) Attributes() *AttributeIterator {
	return NewAttributeIterator(d.attrs)
}

// Get walks the attribute section for the first attribute of type t and
// decodes it into getter. It returns ErrAttributeNotFound if none is
// present, or the iterator's poisoning error if a malformed attribute is
// encountered before a matching one is found.
func (d *Decoder) Get(t AttrType, getter AttributeGetter) error {
	it := d.Attributes()
	for it.Next() {
		attr := it.Value()
		if attr.Type != t {
			continue
		}
		return getter.DecodeValue(attr.Value)
	}
	if err := it.Err(); err != nil {
		return err
	}
	return ErrAttributeNotFound
}
