package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilteringFixture() (*DetermineFilteringSession, time.Time) {
	return NewDetermineFilteringSession([]byte("r1"), []byte("r2"), []byte("r3")), time.Unix(0, 0)
}

func TestDetermineFilteringSendsRound1OnIdle(t *testing.T) {
	s, now := newFilteringFixture()
	outgoing := s.Process(EventIdle{Now: now})
	require.Len(t, outgoing, 1)
	assert.Equal(t, []byte("r1"), outgoing[0].Message)
}

func TestDetermineFilteringInconclusiveWhenRound1TimesOut(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})
	s.Process(EventIdle{Now: now.Add(3 * time.Second)})

	complete, ok := s.Status().(Complete)
	require.True(t, ok)
	assert.Equal(t, FilteringInconclusive, complete.Result)
}

func TestDetermineFilteringSendsRound2AfterRound1Response(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})

	outgoing := s.Process(EventDatagramReceived{Now: now.Add(time.Second)})
	require.Len(t, outgoing, 1)
	assert.Equal(t, []byte("r2"), outgoing[0].Message)
	assert.IsType(t, Waiting{}, s.Status())
}

func TestDetermineFilteringEndpointIndependentWhenRound2Answered(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})
	s.Process(EventDatagramReceived{Now: now.Add(time.Second)})

	s.Process(EventDatagramReceived{Now: now.Add(2 * time.Second)})

	complete, ok := s.Status().(Complete)
	require.True(t, ok)
	assert.Equal(t, FilteringEndpointIndependent, complete.Result)
}

func TestDetermineFilteringSendsRound3WhenRound2TimesOut(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})
	s.Process(EventDatagramReceived{Now: now.Add(time.Second)})

	outgoing := s.Process(EventIdle{Now: now.Add(time.Second + 3*time.Second)})
	require.Len(t, outgoing, 1)
	assert.Equal(t, []byte("r3"), outgoing[0].Message)
}

func TestDetermineFilteringAddressDependentWhenRound3Answered(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})
	s.Process(EventDatagramReceived{Now: now.Add(time.Second)})
	s.Process(EventIdle{Now: now.Add(time.Second + 3*time.Second)})

	s.Process(EventDatagramReceived{Now: now.Add(time.Second + 4*time.Second)})

	complete, ok := s.Status().(Complete)
	require.True(t, ok)
	assert.Equal(t, FilteringAddressDependent, complete.Result)
}

func TestDetermineFilteringAddressAndPortDependentWhenRound3TimesOut(t *testing.T) {
	s, now := newFilteringFixture()
	s.Process(EventIdle{Now: now})
	s.Process(EventDatagramReceived{Now: now.Add(time.Second)})
	round3Start := now.Add(time.Second + 3*time.Second)
	s.Process(EventIdle{Now: round3Start})

	s.Process(EventIdle{Now: round3Start.Add(3 * time.Second)})

	complete, ok := s.Status().(Complete)
	require.True(t, ok)
	assert.Equal(t, FilteringAddressAndPortDependent, complete.Result)
}
