package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionLegalEdges(t *testing.T) {
	assert.True(t, CanTransition(SlotAvailable, SlotRequested))
	assert.True(t, CanTransition(SlotRequested, SlotConfirmed))
	assert.True(t, CanTransition(SlotRequested, SlotAvailable))
	assert.True(t, CanTransition(SlotConfirmed, SlotAvailable))
}

func TestCanTransitionIllegalEdges(t *testing.T) {
	illegal := [][2]string{
		{SlotAvailable, SlotConfirmed}, // must pass through REQUESTED
		{SlotAvailable, SlotAvailable},
		{SlotRequested, SlotRequested},
		{SlotConfirmed, SlotRequested},
		{SlotConfirmed, SlotConfirmed},
	}
	for _, edge := range illegal {
		assert.False(t, CanTransition(edge[0], edge[1]), "%s -> %s must be illegal", edge[0], edge[1])
	}
}

func TestCanTransitionUnknownStates(t *testing.T) {
	assert.False(t, CanTransition("", SlotRequested))
	assert.False(t, CanTransition("PENDING", SlotAvailable))
	assert.False(t, CanTransition(SlotAvailable, "DONE"))
}
