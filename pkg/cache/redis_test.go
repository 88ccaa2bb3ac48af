package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

func setupCache(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestScoreRoundTrip(t *testing.T) {
	client, _ := setupCache(t)
	ctx := context.Background()

	result := &models.ScoringResult{
		FinalScore:     87,
		Confidence:     0.9,
		ConversionRate: 0.6,
		Factors:        []string{"Professional email domain"},
	}
	require.NoError(t, client.SetScore(ctx, "ws-1", "lead-1", result, time.Hour))

	cached, err := client.GetScore(ctx, "ws-1", "lead-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 87, cached.FinalScore)
	assert.InDelta(t, 0.9, cached.Confidence, 1e-9)
	assert.Equal(t, []string{"Professional email domain"}, cached.Factors)
}

func TestGetScoreMissReturnsNil(t *testing.T) {
	client, _ := setupCache(t)

	cached, err := client.GetScore(context.Background(), "ws-1", "unknown")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestScoreKeysAreWorkspaceScoped(t *testing.T) {
	client, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, client.SetScore(ctx, "ws-1", "lead-1", &models.ScoringResult{FinalScore: 80}, time.Hour))

	other, err := client.GetScore(ctx, "ws-2", "lead-1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestInvalidateScore(t *testing.T) {
	client, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, client.SetScore(ctx, "ws-1", "lead-1", &models.ScoringResult{FinalScore: 80}, time.Hour))
	require.NoError(t, client.InvalidateScore(ctx, "ws-1", "lead-1"))

	cached, err := client.GetScore(ctx, "ws-1", "lead-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestScoreExpires(t *testing.T) {
	client, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, client.SetScore(ctx, "ws-1", "lead-1", &models.ScoringResult{FinalScore: 80}, time.Minute))
	mr.FastForward(2 * time.Minute)

	cached, err := client.GetScore(ctx, "ws-1", "lead-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
