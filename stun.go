// Package stun implements Session Traversal Utilities for NAT (STUN),
// RFC 5389, with the RFC 3489 magic-cookie discriminator.
//
// Definitions
//
// STUN Agent: an entity that implements the STUN protocol. The entity can be
// either a STUN client or a STUN server.
//
// STUN Client: an entity that sends STUN requests and receives STUN
// responses. A STUN client can also send indications.
//
// STUN Server: an entity that receives STUN requests and sends STUN
// responses. A STUN server can also send indications.
//
// Transport Address: the combination of an IP address and port number (such
// as a UDP port number).
//
// The package is split into three layers. The wire layer (this package)
// encodes and decodes messages without performing any I/O: it consumes a
// caller-owned Buffer and exposes pure value transformations. The probe
// layer (package probe) is a deterministic, event-driven state machine for
// running multi-step STUN transactions, also free of I/O. The driver layer
// (package internal/probedriver, the cmd/ and stund/ binaries, and the
// stuntest test helper) is the only place sockets, clocks and goroutines
// appear.
package stun

import "encoding/binary"

// bin is shorthand for binary.BigEndian; every integer on the wire is
// big-endian.
var bin = binary.BigEndian //nolint:gochecknoglobals

// DefaultPort is the IANA-assigned port for the "stun" protocol.
const DefaultPort = 3478

// DefaultSecurePort is the IANA-assigned port for the "stuns" protocol.
const DefaultSecurePort = 5349
