package stun

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionIDFromCryptoRand(t *testing.T) {
	id, err := NewTransactionID(rand.Reader)
	require.NoError(t, err)
	assert.NotEqual(t, TransactionID{}, id)
}

func TestNewTransactionIDPropagatesReadError(t *testing.T) {
	errBroken := errors.New("broken reader")
	_, err := NewTransactionID(iotest{err: errBroken})
	assert.ErrorIs(t, err, errBroken)
}

type iotest struct {
	err error
}

func (r iotest) Read([]byte) (int, error) { return 0, r.err }

func TestTransactionIDFromBytes(t *testing.T) {
	raw := []byte("0123456789ab")
	id := TransactionIDFromBytes(raw)
	assert.True(t, bytes.Equal(raw, id.Bytes()))
}

func TestTransactionIDBytesIsAMutableView(t *testing.T) {
	id := TransactionIDFromBytes([]byte("0123456789ab"))
	id.Bytes()[0] = 'X'
	assert.Equal(t, byte('X'), id[0])
}

func TestTransactionIDUsableAsMapKey(t *testing.T) {
	id1 := TransactionIDFromBytes([]byte("0123456789ab"))
	id2 := TransactionIDFromBytes([]byte("0123456789ab"))
	id3 := TransactionIDFromBytes([]byte("ba9876543210"))

	m := map[TransactionID]int{id1: 1}
	assert.Equal(t, 1, m[id2])
	assert.Equal(t, 0, m[id3])
}

var _ io.Reader = iotest{}
