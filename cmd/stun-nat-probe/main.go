// Package main runs two NAT probes against a STUN server:
//   - a mapping probe: one BINDING request, and any response is reported as
//     endpoint-independent mapping (it does not run the multi-test
//     comparison of RFC 5780 section 4.3);
//   - a filtering probe following RFC 5780 section 4.4.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pion/logging"

	"github.com/natcheck/stun"
	"github.com/natcheck/stun/internal/probedriver"
	"github.com/natcheck/stun/probe"
)

var (
	//nolint:gochecknoglobals
	addrStr = flag.String("server", "stun.l.google.com:19302", "STUN server address")
	//nolint:gochecknoglobals
	overallTimeout = flag.Duration("timeout", 15*time.Second, "max time to spend per probe")
	//nolint:gochecknoglobals
	verbose = flag.Int("verbose", 1, "the verbosity level")
)

func buildBindingRequest(setters ...stun.Setter) ([]byte, error) {
	buf := stun.NewBuffer(stun.HeaderSize)
	msg, _, err := stun.Build(buf, rand.Reader, stun.ClassRequest, stun.MethodBinding, setters...)
	return msg, err
}

func runMapping(ctx context.Context, conn net.PacketConn, dst net.Addr, logger logging.LeveledLogger) {
	request, err := buildBindingRequest()
	if err != nil {
		logger.Warnf("building mapping request: %v", err)
		return
	}

	result, err := probedriver.Run(ctx, conn, dst, probe.NewDetermineMappingSession(request), logger)
	if err != nil {
		logger.Warnf("NAT mapping behavior: inconclusive (%v)", err)
		return
	}
	logger.Infof("NAT mapping behavior: %s", result.(probe.MappingResult)) //nolint:forcetypeassert
}

func runFiltering(ctx context.Context, conn net.PacketConn, dst net.Addr, logger logging.LeveledLogger) {
	round1, err := buildBindingRequest()
	if err != nil {
		logger.Warnf("building filtering request 1: %v", err)
		return
	}
	round2, err := buildBindingRequest(stun.Attribute(stun.AttrChangeRequest, &stun.ChangeRequest{ChangeIP: true, ChangePort: true}))
	if err != nil {
		logger.Warnf("building filtering request 2: %v", err)
		return
	}
	round3, err := buildBindingRequest(stun.Attribute(stun.AttrChangeRequest, &stun.ChangeRequest{ChangePort: true}))
	if err != nil {
		logger.Warnf("building filtering request 3: %v", err)
		return
	}

	session := probe.NewDetermineFilteringSession(round1, round2, round3)
	result, err := probedriver.Run(ctx, conn, dst, session, logger)
	if err != nil {
		logger.Warnf("NAT filtering behavior: inconclusive (%v)", err)
		return
	}
	logger.Infof("NAT filtering behavior: %s", result.(probe.FilteringResult)) //nolint:forcetypeassert
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
	logger := logging.NewDefaultLeveledLoggerForScope("stun-nat-probe", logLevel, os.Stdout)

	dst, err := net.ResolveUDPAddr("udp4", *addrStr)
	if err != nil {
		logger.Fatalf("resolve %s: %v", *addrStr, err)
	}

	mappingConn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}
	defer mappingConn.Close() //nolint:errcheck

	if local, err := stun.NewTransportAddr(mappingConn.LocalAddr()); err == nil {
		logger.Infof("probing from %s", local)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *overallTimeout)
	defer cancel()
	runMapping(ctx, mappingConn, dst, logger)

	filterConn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}
	defer filterConn.Close() //nolint:errcheck

	ctx2, cancel2 := context.WithTimeout(context.Background(), *overallTimeout)
	defer cancel2()
	runFiltering(ctx2, filterConn, dst, logger)

	fmt.Println("done")
}
