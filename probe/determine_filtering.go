package probe

import "time"

const filteringTimeout = 3 * time.Second

// FilteringResult is what DetermineFilteringSession reports on success,
// mirroring the three outcomes cmd/stun-nat-behaviour/main.go's
// filteringTests logs (plus Inconclusive, for when the server never
// responds even to a plain request and the probe can say nothing at all).
type FilteringResult int

const (
	// FilteringInconclusive means even the plain first request went
	// unanswered.
	FilteringInconclusive FilteringResult = iota
	// FilteringEndpointIndependent means a response arrived after
	// requesting both IP and port be changed.
	FilteringEndpointIndependent
	// FilteringAddressDependent means the IP+port change request timed
	// out but the port-only change request was answered.
	FilteringAddressDependent
	// FilteringAddressAndPortDependent means neither change request was
	// answered.
	FilteringAddressAndPortDependent
)

func (r FilteringResult) String() string {
	switch r {
	case FilteringInconclusive:
		return "inconclusive"
	case FilteringEndpointIndependent:
		return "endpoint independent"
	case FilteringAddressDependent:
		return "address dependent"
	case FilteringAddressAndPortDependent:
		return "address and port dependent"
	default:
		return "unknown"
	}
}

type filteringState int

const (
	filteringInitial filteringState = iota
	filteringAwaitingRound1
	filteringAwaitingRound2
	filteringAwaitingRound3
	filteringComplete
)

// DetermineFilteringSession drives up to three BINDING requests to
// classify NAT filtering behavior per RFC 5780 section 4.4: a plain
// request (round 1, to confirm the server answers at all), a request with
// CHANGE-REQUEST{change-ip, change-port} set (round 2), and, only if round
// 2 times out, a request with CHANGE-REQUEST{change-port} alone (round 3).
// The caller supplies all three pre-encoded, since message construction is
// the encoder pipeline's job, not the session's.
type DetermineFilteringSession struct {
	state     filteringState
	round1    []byte
	round2    []byte
	round3    []byte
	timeoutAt time.Time
	result    any
}

// NewDetermineFilteringSession starts a session that will run round1
// (plain BINDING), then round2 (CHANGE-REQUEST change-ip+change-port), then
// round3 (CHANGE-REQUEST change-port) in order, stopping as soon as round2
// or round3 is answered.
func NewDetermineFilteringSession(round1, round2, round3 []byte) *DetermineFilteringSession {
	return &DetermineFilteringSession{state: filteringInitial, round1: round1, round2: round2, round3: round3}
}

func (s *DetermineFilteringSession) complete(result FilteringResult) []Outgoing {
	s.state = filteringComplete
	s.result = result
	return nil
}

// Process implements Session.
func (s *DetermineFilteringSession) Process(event Event) []Outgoing { //nolint:cyclop
	switch s.state {
	case filteringInitial:
		if e, ok := event.(EventIdle); ok {
			s.state = filteringAwaitingRound1
			s.timeoutAt = e.Now.Add(filteringTimeout)
			return []Outgoing{{Message: s.round1}}
		}
		return nil
	case filteringAwaitingRound1:
		switch e := event.(type) {
		case EventIdle:
			if !e.Now.Before(s.timeoutAt) {
				return s.complete(FilteringInconclusive)
			}
			return nil
		case EventDatagramReceived:
			s.state = filteringAwaitingRound2
			s.timeoutAt = e.Now.Add(filteringTimeout)
			return []Outgoing{{Message: s.round2}}
		}
	case filteringAwaitingRound2:
		switch e := event.(type) {
		case EventIdle:
			if !e.Now.Before(s.timeoutAt) {
				s.state = filteringAwaitingRound3
				s.timeoutAt = e.Now.Add(filteringTimeout)
				return []Outgoing{{Message: s.round3}}
			}
			return nil
		case EventDatagramReceived:
			return s.complete(FilteringEndpointIndependent)
		}
	case filteringAwaitingRound3:
		switch e := event.(type) {
		case EventIdle:
			if !e.Now.Before(s.timeoutAt) {
				return s.complete(FilteringAddressAndPortDependent)
			}
			return nil
		case EventDatagramReceived:
			return s.complete(FilteringAddressDependent)
		}
	case filteringComplete:
		return nil
	}
	return nil
}

// Status implements Session.
func (s *DetermineFilteringSession) Status() Status {
	if s.state == filteringComplete {
		return Complete{Result: s.result}
	}
	return Waiting{Timeout: s.timeoutAt}
}
