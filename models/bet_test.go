package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetStatus_CanTransitionTo(t *testing.T) {
	terminals := []BetStatus{BetStatusWon, BetStatusLost, BetStatusPush, BetStatusCancelled, BetStatusExpired}

	for _, target := range terminals {
		assert.True(t, BetStatusPending.CanTransitionTo(target), "pending should transition to %s", target)
	}

	// Terminal states never transition, not even back to pending
	for _, from := range terminals {
		assert.False(t, from.CanTransitionTo(BetStatusPending), "%s should not reopen", from)
		for _, target := range terminals {
			assert.False(t, from.CanTransitionTo(target), "%s should not move to %s", from, target)
		}
	}

	// Pending to pending is not a transition
	assert.False(t, BetStatusPending.CanTransitionTo(BetStatusPending))

	// Unknown target strings are rejected
	assert.False(t, BetStatusPending.CanTransitionTo(BetStatus("settled")))
}

func TestBetStatus_Terminal(t *testing.T) {
	assert.False(t, BetStatusPending.Terminal())
	assert.True(t, BetStatusWon.Terminal())
	assert.True(t, BetStatusLost.Terminal())
	assert.True(t, BetStatusPush.Terminal())
	assert.True(t, BetStatusCancelled.Terminal())
	assert.True(t, BetStatusExpired.Terminal())
}

func TestBetRecord_WinPercentage(t *testing.T) {
	r := &BetRecord{Won: 3, Lost: 1, Push: 2}
	assert.InDelta(t, 75.0, r.WinPercentage(), 0.001)

	empty := &BetRecord{}
	assert.Equal(t, 0.0, empty.WinPercentage())
}
