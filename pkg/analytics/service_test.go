package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
	"github.com/jordanlanch/freelanceflow/pkg/store"
)

const testWorkspace = "ws-1"

type failingStore struct{}

func (failingStore) InsertEvent(context.Context, models.AnalyticsEvent) error {
	return errors.New("write failed")
}

func TestTrackPersistsEvent(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, logger.Default())

	svc.Track(context.Background(), testWorkspace, models.TrackEventRequest{
		Type:       "lead_analyzed",
		EntityType: "lead",
		EntityID:   "lead-1",
		Properties: map[string]interface{}{"final_score": 87},
		UserID:     "user-1",
	})

	events := mem.Events()
	require.Len(t, events, 1)
	event := events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "lead_analyzed", event.EventType)
	assert.Equal(t, "lead", event.EntityType)
	assert.Equal(t, "lead-1", event.EntityID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, testWorkspace, event.WorkspaceID)
	assert.True(t, strings.HasPrefix(event.SessionID, "session_"))
	assert.False(t, event.CreatedAt.IsZero())
}

func TestTrackSwallowsStoreErrors(t *testing.T) {
	svc := NewService(failingStore{}, logger.Default())

	// Must not panic or propagate the failure.
	svc.Track(context.Background(), testWorkspace, models.TrackEventRequest{Type: "lead_analyzed"})
}

func TestTrackSurvivesCancelledCaller(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, logger.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Track(ctx, testWorkspace, models.TrackEventRequest{Type: "proposal_optimized"})

	assert.Len(t, mem.Events(), 1)
}

func TestTrackAsyncEventuallyPersists(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, logger.Default())

	svc.TrackAsync(context.Background(), testWorkspace, models.TrackEventRequest{Type: "invoice_automated"})

	require.Eventually(t, func() bool {
		return len(mem.Events()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionIDsAreUnique(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, logger.Default())

	svc.Track(context.Background(), testWorkspace, models.TrackEventRequest{Type: "a"})
	svc.Track(context.Background(), testWorkspace, models.TrackEventRequest{Type: "b"})

	events := mem.Events()
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.NotEqual(t, events[0].SessionID, events[1].SessionID)
}
