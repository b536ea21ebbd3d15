package stun

import "io"

// Setter adds one attribute to a message under construction. It mirrors
// the teacher's own Setter interface (`AddTo(*Message) error`), adapted to
// the Encoder pipeline: instead of mutating a shared *Message, a Setter
// adds itself to an *Encoder.
type Setter interface {
	AddTo(enc *Encoder) error
}

// Getter reads one attribute out of a decoded message, mirroring the
// teacher's Getter interface (`GetFrom(*Message) error`).
type Getter interface {
	GetFrom(dec *Decoder) error
}

// Checker reports whether a decoded message satisfies some predicate
// (e.g. "is this a success response"), mirroring the teacher's Checker
// interface (`Check(*Message) error`).
type Checker interface {
	Check(dec *Decoder) error
}

// Attribute adapts an AttributeSetter codec plus its wire type tag into a
// Setter, so it can be passed to Build alongside other attributes. This is
// the mechanism by which MappedAddress is reused for both MAPPED-ADDRESS
// and, tagged differently, RESPONSE-ORIGIN/OTHER-ADDRESS.
func Attribute(t AttrType, codec AttributeSetter) Setter {
	return attributeSetter{t: t, codec: codec}
}

type attributeSetter struct {
	t     AttrType
	codec AttributeSetter
}

func (a attributeSetter) AddTo(enc *Encoder) error {
	return enc.AddAttribute(a.t, a.codec)
}

// AttributeValue adapts an AttributeGetter codec plus its wire type tag
// into a Getter.
func AttributeValue(t AttrType, codec AttributeGetter) Getter {
	return attributeGetter{t: t, codec: codec}
}

type attributeGetter struct {
	t     AttrType
	codec AttributeGetter
}

func (a attributeGetter) GetFrom(dec *Decoder) error {
	return dec.Get(a.t, a.codec)
}

// Build assembles a complete message into buf: class/method become the
// header, a fresh TransactionID is drawn from rnd (normally
// crypto/rand.Reader), and each setter in turn adds one attribute. It is
// the equivalent of the teacher's stun.MustBuild(stun.TransactionID,
// stun.BindingRequest, ...) convenience, adapted because this package's
// Header is an immutable value rather than a field the teacher's
// TransactionID Setter mutates in place.
func Build(buf *Buffer, rnd io.Reader, class Class, method Method, setters ...Setter) ([]byte, TransactionID, error) {
	txID, err := NewTransactionID(rnd)
	if err != nil {
		return nil, TransactionID{}, err
	}

	enc := NewEncoder(buf, Header{Class: class, Method: method, TransactionID: txID})
	for _, s := range setters {
		if err := s.AddTo(enc); err != nil {
			return nil, TransactionID{}, err
		}
	}

	msg, err := enc.Finish()
	if err != nil {
		return nil, TransactionID{}, err
	}
	return msg, txID, nil
}

// BuildWithTransactionID is like Build but reuses an existing transaction
// ID (e.g. a retry of the same logical request) instead of drawing a fresh
// one.
func BuildWithTransactionID(buf *Buffer, txID TransactionID, class Class, method Method, setters ...Setter) ([]byte, error) {
	enc := NewEncoder(buf, Header{Class: class, Method: method, TransactionID: txID})
	for _, s := range setters {
		if err := s.AddTo(enc); err != nil {
			return nil, err
		}
	}
	return enc.Finish()
}
