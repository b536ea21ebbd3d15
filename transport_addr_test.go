package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransportAddrFromUDPAddr(t *testing.T) {
	udpAddr := &net.UDPAddr{IP: net.ParseIP("192.0.2.1"), Port: 3478}
	ta, err := NewTransportAddr(udpAddr)
	require.NoError(t, err)
	assert.True(t, ta.IP.Equal(net.ParseIP("192.0.2.1")))
	assert.Equal(t, 3478, ta.Port)
	assert.Equal(t, "192.0.2.1:3478", ta.String())
}

func TestTransportAddrEqual(t *testing.T) {
	a := &TransportAddr{IP: net.ParseIP("192.0.2.1"), Port: 3478}
	b := &TransportAddr{IP: net.ParseIP("192.0.2.1"), Port: 3478}
	c := &TransportAddr{IP: net.ParseIP("192.0.2.2"), Port: 3478}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTransportAddrAddrRoundTrip(t *testing.T) {
	ta := &TransportAddr{IP: net.ParseIP("198.51.100.9"), Port: 443}
	addr, ok := ta.Addr().(*net.UDPAddr)
	require.True(t, ok)
	assert.True(t, addr.IP.Equal(ta.IP))
	assert.Equal(t, ta.Port, addr.Port)
}
