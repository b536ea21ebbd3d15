package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMessage(t *testing.T, header Header, setters ...Setter) []byte {
	t.Helper()
	enc := NewEncoder(NewBuffer(0), header)
	for _, s := range setters {
		require.NoError(t, s.AddTo(enc))
	}
	msg, err := enc.Finish()
	require.NoError(t, err)
	return msg
}

func TestDecoderBasicAccessors(t *testing.T) {
	txID := TransactionIDFromBytes([]byte("0123456789ab"))
	msg := buildMessage(t, Header{Class: ClassSuccessResponse, Method: MethodBinding, TransactionID: txID})

	dec, err := NewDecoder(msg)
	require.NoError(t, err)
	assert.Equal(t, ClassSuccessResponse, dec.Class())
	assert.Equal(t, MethodBinding, dec.Method())
	assert.Equal(t, txID, dec.TransactionID())
}

func TestDecoderGetFindsAttributeByType(t *testing.T) {
	software := Software{Text: "hi"}
	msg := buildMessage(t, Header{Method: MethodBinding}, Attribute(AttrSoftware, &software))

	dec, err := NewDecoder(msg)
	require.NoError(t, err)

	var got Software
	require.NoError(t, dec.Get(AttrSoftware, &got))
	assert.Equal(t, "hi", got.Text)
}

func TestDecoderGetReturnsNotFound(t *testing.T) {
	msg := buildMessage(t, Header{Method: MethodBinding})
	dec, err := NewDecoder(msg)
	require.NoError(t, err)

	var got Software
	assert.ErrorIs(t, dec.Get(AttrSoftware, &got), ErrAttributeNotFound)
}

func TestNewDecoderRejectsTooShort(t *testing.T) {
	_, err := NewDecoder(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
}

func TestNewDecoderStrictLengthCheck(t *testing.T) {
	msg := buildMessage(t, Header{Method: MethodBinding})

	truncated := append([]byte(nil), msg...)
	bin.PutUint16(truncated[2:4], 4) // claim 4 attribute bytes that aren't there
	_, err := NewDecoder(truncated)
	assert.ErrorIs(t, err, ErrLengthExceedsSlice)

	padded := append(append([]byte(nil), msg...), 0, 0, 0, 0)
	_, err = NewDecoder(padded)
	assert.ErrorIs(t, err, ErrSliceExceedsLength)

	dec, err := NewDecoder(padded, WithoutStrictLengthCheck())
	require.NoError(t, err)
	assert.False(t, dec.Attributes().Next())
}
