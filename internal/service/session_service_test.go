package service

import (
	"testing"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService() *SessionService {
	svc := NewSessionService(store.NewMemoryStore())
	svc.now = func() time.Time { return time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSessionLifecycle(t *testing.T) {
	svc := newSessionService()

	session, err := svc.Create("Phonics Basics", "Phonemic Awareness", "2025-08-20T15:00:00Z", "Weekly live session", 30)
	require.NoError(t, err)
	assert.Equal(t, model.SessionUpcoming, session.Status)
	assert.Contains(t, session.ID, "session_")

	updated, err := svc.UpdateStatus(session.ID, model.SessionLive)
	require.NoError(t, err)
	assert.Equal(t, model.SessionLive, updated.Status)

	live := svc.ByStatus(model.SessionLive)
	require.Len(t, live, 1)
	assert.Empty(t, svc.ByStatus(model.SessionUpcoming))

	require.NoError(t, svc.Delete(session.ID))
	assert.Empty(t, svc.All())
}

func TestSessionNotFound(t *testing.T) {
	svc := newSessionService()

	_, err := svc.UpdateStatus("nope", model.SessionLive)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete("nope"), util.ErrSessionNotFound)
}

func TestSessionCreateRequiresFields(t *testing.T) {
	svc := newSessionService()
	_, err := svc.Create("", "Subject", "2025-08-20T15:00:00Z", "", 30)
	assert.ErrorIs(t, err, util.ErrRequiredFields)
}

func TestSessionStatsCountsTodayAndTomorrow(t *testing.T) {
	svc := newSessionService()

	_, err := svc.Create("Today", "Alphabet", "2025-08-20T15:00:00Z", "", 30)
	require.NoError(t, err)
	_, err = svc.Create("Tomorrow", "Alphabet", "2025-08-21T15:00:00Z", "", 30)
	require.NoError(t, err)
	_, err = svc.Create("Next week", "Alphabet", "2025-08-27T15:00:00Z", "", 30)
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.Upcoming)
	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 1, stats.Tomorrow)
}
