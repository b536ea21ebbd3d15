// Package probedriver owns a probe.Session's socket, clock and read
// deadlines, turning the pure state machine into a running probe. Every cmd/ binary that
// drives a probe.Session does so through Run rather than touching
// net.PacketConn directly, the same way the teacher's Client keeps all of
// its goroutines and socket calls out of stun.Message/stun.Agent.
package probedriver

import (
	"context"
	"errors"
	"net"
	"os"
	"time"

	"github.com/pion/logging"

	"github.com/natcheck/stun/probe"
)

// maxDatagramSize is large enough for any STUN message this repository
// builds (header plus a handful of small attributes); RFC 5389 does not
// itself bound datagram size, but every message this library emits is well
// under the common network MTU.
const maxDatagramSize = 1500

// Run drives session to completion against conn, sending to dst by default
// (an Outgoing with a non-nil To overrides the destination for that one
// datagram; the shipped probes leave To nil). It returns session's terminal
// result, or an error if ctx is canceled, the socket fails outside of a
// read timeout, or the terminal result is itself an error (such as
// probe.ErrUnexpectedTimeout).
func Run(ctx context.Context, conn net.PacketConn, dst net.Addr, session probe.Session, logger logging.LeveledLogger) (any, error) {
	if logger == nil {
		logger = logging.NewDefaultLeveledLoggerForScope("probedriver", logging.LogLevelWarn, os.Stdout)
	}

	send := func(outgoing []probe.Outgoing) error {
		for _, o := range outgoing {
			if o.Message == nil {
				continue
			}
			to := dst
			if o.To != nil {
				to = o.To
			}
			logger.Debugf("sending %d bytes to %s", len(o.Message), to)
			if _, err := conn.WriteTo(o.Message, to); err != nil {
				return err
			}
		}
		return nil
	}

	if err := send(session.Process(probe.EventIdle{Now: time.Now()})); err != nil {
		return nil, err
	}

	buf := make([]byte, maxDatagramSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status := session.Status()
		complete, ok := status.(probe.Complete)
		if ok {
			if err, ok := complete.Result.(error); ok {
				return nil, err
			}
			return complete.Result, nil
		}

		waiting := status.(probe.Waiting) //nolint:forcetypeassert // Status is a closed sum of Waiting|Complete
		deadline := waiting.Timeout
		if ctxDeadline, hasDeadline := ctx.Deadline(); hasDeadline && ctxDeadline.Before(deadline) {
			deadline = ctxDeadline
		}
		if err := conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}

		n, src, err := conn.ReadFrom(buf)
		var event probe.Event
		switch {
		case err == nil:
			received := make([]byte, n)
			copy(received, buf[:n])
			event = probe.EventDatagramReceived{Bytes: received, Src: src, Now: time.Now()}
		case isTimeout(err):
			event = probe.EventIdle{Now: time.Now()}
		default:
			return nil, err
		}

		if err := send(session.Process(event)); err != nil {
			return nil, err
		}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
