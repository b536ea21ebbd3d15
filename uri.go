// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package stun

import (
	"errors"
	"net"
	"net/url"
	"strconv"
)

var (
	// ErrSchemeType indicates the scheme type could not be parsed.
	ErrSchemeType = errors.New("unknown scheme type")

	// ErrSTUNQuery indicates query arguments are provided in a STUN URL.
	ErrSTUNQuery = errors.New("queries not supported in stun address")

	// ErrHost indicates malformed hostname is provided.
	ErrHost = errors.New("invalid hostname")

	// ErrPort indicates malformed port is provided.
	ErrPort = errors.New("invalid port")
)

// SchemeType indicates the type of server a URI names. Only the STUN
// schemes are recognized here: TURN (RFC 7065) is out of scope, since this
// repository implements no TURN relay client.
type SchemeType int

const (
	// SchemeTypeUnknown indicates an unknown or unsupported scheme.
	SchemeTypeUnknown SchemeType = iota

	// SchemeTypeSTUN indicates the URL represents a STUN server reachable
	// over UDP.
	SchemeTypeSTUN

	// SchemeTypeSTUNS indicates the URL represents a STUN server reachable
	// over TCP. This repository has no TCP framing, so a SchemeTypeSTUNS
	// URI parses successfully but cannot be dialed by cmd/stun-client.
	SchemeTypeSTUNS
)

// NewSchemeType defines a procedure for creating a new SchemeType from a raw
// string naming the scheme type.
func NewSchemeType(raw string) SchemeType {
	switch raw {
	case "stun":
		return SchemeTypeSTUN
	case "stuns":
		return SchemeTypeSTUNS
	default:
		return SchemeTypeUnknown
	}
}

func (t SchemeType) String() string {
	switch t {
	case SchemeTypeSTUN:
		return "stun"
	case SchemeTypeSTUNS:
		return "stuns"
	default:
		return "unknown"
	}
}

// ProtoType indicates the transport protocol a URI implies.
type ProtoType int

const (
	// ProtoTypeUnknown indicates an unknown or unsupported protocol.
	ProtoTypeUnknown ProtoType = iota

	// ProtoTypeUDP indicates the URL uses a UDP transport.
	ProtoTypeUDP

	// ProtoTypeTCP indicates the URL uses a TCP transport.
	ProtoTypeTCP
)

func (t ProtoType) String() string {
	switch t {
	case ProtoTypeUDP:
		return "udp"
	case ProtoTypeTCP:
		return "tcp"
	default:
		return "unknown"
	}
}

// URI represents a STUN URI (RFC 7064).
type URI struct {
	Scheme SchemeType
	Host   string
	Port   int
	Proto  ProtoType
}

// ParseURI parses a STUN URI following the ABNF syntax described in
// https://tools.ietf.org/html/rfc7064.
func ParseURI(raw string) (*URI, error) {
	rawParts, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	var uri URI
	uri.Scheme = NewSchemeType(rawParts.Scheme)
	if uri.Scheme == SchemeTypeUnknown {
		return nil, ErrSchemeType
	}

	var rawPort string
	if uri.Host, rawPort, err = net.SplitHostPort(rawParts.Opaque); err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) && addrErr.Err == "missing port in address" {
			nextRawURL := uri.Scheme.String() + ":" + rawParts.Opaque + ":" + strconv.Itoa(DefaultPort)
			if rawParts.RawQuery != "" {
				nextRawURL += "?" + rawParts.RawQuery
			}
			return ParseURI(nextRawURL)
		}
		return nil, err
	}

	if uri.Host == "" {
		return nil, ErrHost
	}
	if uri.Port, err = strconv.Atoi(rawPort); err != nil {
		return nil, ErrPort
	}

	if qArgs, err := url.ParseQuery(rawParts.RawQuery); err != nil || len(qArgs) > 0 {
		return nil, ErrSTUNQuery
	}

	if uri.Scheme == SchemeTypeSTUNS {
		uri.Proto = ProtoTypeTCP
	} else {
		uri.Proto = ProtoTypeUDP
	}

	return &uri, nil
}

func (u URI) String() string {
	return u.Scheme.String() + ":" + net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
}

// IsSecure returns whether this URI's scheme names a TCP-reachable server.
func (u URI) IsSecure() bool {
	return u.Scheme == SchemeTypeSTUNS
}
