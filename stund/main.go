// Package main implements a minimal RFC 5389 BINDING server.
//
// Current implementation is UDP only and does not utilize the FINGERPRINT
// mechanism, ALTERNATE-SERVER, or any credential mechanism. It does not
// support backwards compatibility with RFC 3489.
//
// The STUN server MUST support the Binding method. It SHOULD NOT utilize
// the short-term or long-term credential mechanism. This is because the
// work involved in authenticating the request is more than the work in
// simply processing it. It SHOULD NOT utilize the ALTERNATE-SERVER
// mechanism for the same reason.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/pion/logging"

	"github.com/natcheck/stun"
)

const defaultSoftware = "natcheck/stund"

var (
	//nolint:gochecknoglobals
	network = flag.String("net", "udp", "network to listen")
	//nolint:gochecknoglobals
	address = flag.String("addr", "0.0.0.0:3478", "address to listen")
	//nolint:gochecknoglobals
	verbose = flag.Int("verbose", 1, "the verbosity level")
)

// Server answers BINDING requests with the requester's observed transport
// address, reflected back as XOR-MAPPED-ADDRESS plus a SOFTWARE attribute
// identifying this implementation.
type Server struct {
	Logger logging.LeveledLogger
}

func (s *Server) respond(addr net.Addr, req *stun.Decoder) ([]byte, error) {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("stund: unsupported address type %T", addr) //nolint:err113
	}

	buf := stun.NewBuffer(stun.HeaderSize)
	xorAddr := stun.XORMappedAddress{IP: udpAddr.IP, Port: udpAddr.Port, TransactionID: req.TransactionID()}
	software := stun.Software{Text: defaultSoftware}
	return stun.BuildWithTransactionID(
		buf, req.TransactionID(), stun.ClassSuccessResponse, stun.MethodBinding,
		stun.Attribute(stun.AttrXORMappedAddress, &xorAddr),
		stun.Attribute(stun.AttrSoftware, &software),
	)
}

func (s *Server) serveConn(conn net.PacketConn, recvBuf []byte) error {
	n, addr, err := conn.ReadFrom(recvBuf)
	if err != nil {
		return err
	}

	dec, err := stun.NewDecoder(recvBuf[:n])
	if err != nil {
		s.Logger.Debugf("ignoring malformed datagram from %s: %v", addr, err)
		return nil
	}
	if dec.Class() != stun.ClassRequest || dec.Method() != stun.MethodBinding {
		s.Logger.Debugf("ignoring non-binding-request from %s", addr)
		return nil
	}

	resp, err := s.respond(addr, dec)
	if err != nil {
		s.Logger.Warnf("building response for %s: %v", addr, err)
		return nil
	}
	if _, err := conn.WriteTo(resp, addr); err != nil {
		s.Logger.Warnf("writing response to %s: %v", addr, err)
	}
	return nil
}

// Serve reads datagrams from conn and responds to BINDING requests until
// conn is closed or a non-recoverable read error occurs.
func (s *Server) Serve(conn net.PacketConn) error {
	buf := make([]byte, 1500)
	for {
		if err := s.serveConn(conn, buf); err != nil {
			return err
		}
	}
}

func normalize(addr string) string {
	if addr == "" {
		addr = "0.0.0.0"
	}
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, stun.DefaultPort)
	}
	return addr
}

func main() {
	flag.Parse()

	logLevel := logging.LogLevelInfo
	switch *verbose {
	case 0:
		logLevel = logging.LogLevelWarn
	case 2:
		logLevel = logging.LogLevelDebug
	case 3:
		logLevel = logging.LogLevelTrace
	}
	logger := logging.NewDefaultLeveledLoggerForScope("stund", logLevel, os.Stdout)

	if *network != "udp" {
		logger.Fatalf("unsupported network: %s", *network)
	}

	laddr := normalize(*address)
	conn, err := net.ListenPacket(*network, laddr)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}
	logger.Infof("listening on %s via %s", laddr, *network)

	server := &Server{Logger: logger}
	if err := server.Serve(conn); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}
