package game_test

import (
	"Mixtape/services/game"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowPolicy(t *testing.T) {
	start := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 18, 21, 0, 0, 0, time.UTC)
	policy := game.Window(start, end)

	before := policy(start.Add(-time.Hour))
	assert.False(t, before.Open)
	assert.Contains(t, before.Message, "opens on")

	during := policy(start.Add(time.Hour))
	assert.True(t, during.Open)
	assert.Empty(t, during.Message)

	after := policy(end.Add(time.Minute))
	assert.False(t, after.Open)
	assert.Equal(t, "The game is over!", after.Message)
}

func TestAlwaysOpen(t *testing.T) {
	assert.True(t, game.AlwaysOpen()(time.Now()).Open)
}

func TestWindowFromEnv(t *testing.T) {
	t.Setenv("GAME_START_DATE", "2025-12-15T00:00:00Z")
	t.Setenv("GAME_END_DATE", "2025-12-18T21:00:00Z")

	policy := game.WindowFromEnv()
	assert.False(t, policy(time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC)).Open)
	assert.True(t, policy(time.Date(2025, 12, 16, 12, 0, 0, 0, time.UTC)).Open)
}

func TestWindowFromEnvFallsBackToAlwaysOpen(t *testing.T) {
	t.Setenv("GAME_START_DATE", "")
	t.Setenv("GAME_END_DATE", "not-a-date")

	policy := game.WindowFromEnv()
	assert.True(t, policy(time.Now()).Open)
}
