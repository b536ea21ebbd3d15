package stun

import "unicode/utf8"

// softwareMaxBytes is the maximum encoded length of a SOFTWARE attribute
// value, 763 bytes per RFC 5389 section 15.10 (chosen so the attribute,
// padded, never exceeds 768 bytes).
const softwareMaxBytes = 763

// Software represents the SOFTWARE attribute value: a textual description
// of the software generating the message, for diagnostic purposes.
type Software struct {
	Text string
}

// EncodeValue appends the UTF-8 bytes of s.Text.
func (s *Software) EncodeValue(buf *Buffer) error {
	b := []byte(s.Text)
	if len(b) > softwareMaxBytes {
		return ErrSoftwareTooBig
	}
	buf.Append(b)
	return nil
}

// DecodeValue validates value as UTF-8 and copies it into s.Text. An
// attribute with invalid UTF-8 yields a Utf8Err identifying the byte index
// of the first invalid rune.
func (s *Software) DecodeValue(value []byte) error {
	if len(value) > softwareMaxBytes {
		return ErrSoftwareTooBig
	}
	if !utf8.Valid(value) {
		return &Utf8Err{Attr: AttrSoftware, Index: firstInvalidRune(value)}
	}
	s.Text = string(value)
	return nil
}

// firstInvalidRune returns the byte offset of the first invalid UTF-8
// sequence in b.
func firstInvalidRune(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
