package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcrawl/internal/system"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestStreamerLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	s, err := Streamer(sr, Cue{Freq: 440, Length: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, sr.N(100*time.Millisecond), drain(s))
}

func TestStreamerRejectsAliasedTone(t *testing.T) {
	// A tone at or above half the sample rate cannot be represented.
	_, err := Streamer(beep.SampleRate(8000), Cue{Freq: 5000, Length: time.Millisecond})
	assert.Error(t, err)
}

func TestCueTable(t *testing.T) {
	for _, kind := range []system.EventKind{
		system.EventPlayerHit, system.EventEnemyKilled, system.EventPickup, system.EventRoomCleared,
	} {
		c, ok := CueFor(kind)
		require.True(t, ok, kind.String())
		assert.Positive(t, c.Length, kind.String())
		assert.Less(t, c.Freq, float64(sampleRate)/2, kind.String())
	}
	_, ok := CueFor(system.EventRoomEnter)
	assert.False(t, ok)
}
