// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedAddressRoundTripIPv4(t *testing.T) {
	a := MappedAddress{IP: net.ParseIP("192.0.2.1").To4(), Port: 32853}

	buf := NewBuffer(0)
	require.NoError(t, a.EncodeValue(buf))

	var decoded MappedAddress
	require.NoError(t, decoded.DecodeValue(buf.Bytes()))
	assert.True(t, a.IP.Equal(decoded.IP))
	assert.Equal(t, a.Port, decoded.Port)
}

func TestMappedAddressRoundTripIPv6(t *testing.T) {
	a := MappedAddress{IP: net.ParseIP("2001:db8::1"), Port: 12345}

	buf := NewBuffer(0)
	require.NoError(t, a.EncodeValue(buf))

	var decoded MappedAddress
	require.NoError(t, decoded.DecodeValue(buf.Bytes()))
	assert.True(t, a.IP.Equal(decoded.IP))
	assert.Equal(t, a.Port, decoded.Port)
}

func TestMappedAddressEncodeRejectsBadIPLength(t *testing.T) {
	a := MappedAddress{IP: net.IP{1, 2, 3}, Port: 1}
	buf := NewBuffer(0)
	assert.ErrorIs(t, a.EncodeValue(buf), ErrBadIPLength)
}

func TestMappedAddressDecodeRejectsNonZeroFirstByte(t *testing.T) {
	value := []byte{0x01, 0x01, 0x00, 0x01, 127, 0, 0, 1}
	var a MappedAddress
	assert.ErrorIs(t, a.DecodeValue(value), ErrNonZeroFirstByte)
}

func TestMappedAddressDecodeRejectsUnknownFamily(t *testing.T) {
	value := []byte{0x00, 0x03, 0x00, 0x01, 127, 0, 0, 1}
	var a MappedAddress
	assert.ErrorIs(t, a.DecodeValue(value), ErrUnknownFamily)
}

func TestMappedAddressDecodeRejectsMismatchedAddressLength(t *testing.T) {
	// Family says IPv4 (4 bytes) but only 2 address bytes follow.
	value := []byte{0x00, 0x01, 0x00, 0x01, 127, 0}
	var a MappedAddress
	assert.ErrorIs(t, a.DecodeValue(value), ErrUnexpectedEndOfSlice)
}

func TestMappedAddressReusedForResponseOriginAndOtherAddress(t *testing.T) {
	a := MappedAddress{IP: net.ParseIP("198.51.100.7").To4(), Port: 3478}

	buf := NewBuffer(0)
	require.NoError(t, a.EncodeValue(buf))

	enc := NewEncoder(NewBuffer(0), Header{Method: MethodBinding})
	require.NoError(t, enc.AddAttribute(AttrResponseOrigin, &a))
	require.NoError(t, enc.AddAttribute(AttrOtherAddress, &a))
	msg, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(msg)
	require.NoError(t, err)

	var origin MappedAddress
	require.NoError(t, dec.Get(AttrResponseOrigin, &origin))
	assert.True(t, a.IP.Equal(origin.IP))
	assert.Equal(t, a.Port, origin.Port)

	var got MappedAddress
	require.NoError(t, dec.Get(AttrOtherAddress, &got))
	assert.True(t, a.IP.Equal(got.IP))
	assert.Equal(t, a.Port, got.Port)
}
