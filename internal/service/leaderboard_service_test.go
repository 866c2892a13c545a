package service

import (
	"testing"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaderboardUsers struct {
	users []model.User
}

func (f *fakeLeaderboardUsers) FindTopByPoints(limit int) ([]model.User, error) {
	if limit > len(f.users) {
		limit = len(f.users)
	}
	return f.users[:limit], nil
}

func TestLeaderboardStandings(t *testing.T) {
	users := &fakeLeaderboardUsers{users: []model.User{
		{Name: "Emma Chen", Username: "emma_parent", Points: 120},
		{Name: "Test User", Username: "testuser", Points: 80},
	}}
	svc := NewLeaderboardService(store.NewMemoryStore(), users)

	entries, err := svc.Standings(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "emma_parent", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboardOptOutHidesStandings(t *testing.T) {
	users := &fakeLeaderboardUsers{users: []model.User{{Username: "emma_parent", Points: 120}}}
	svc := NewLeaderboardService(store.NewMemoryStore(), users)

	assert.False(t, svc.OptedOut())

	svc.SetOptOut(true)
	assert.True(t, svc.OptedOut())

	entries, err := svc.Standings(10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 重新加入后榜单恢复
	svc.SetOptOut(false)
	entries, err = svc.Standings(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
