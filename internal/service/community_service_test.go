package service

import (
	"testing"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommunityService() (*CommunityService, *store.MemoryStore) {
	s := store.NewMemoryStore()
	svc := NewCommunityService(s)
	return svc, s
}

func TestCreatePostPrependsNewestFirst(t *testing.T) {
	svc, _ := newCommunityService()

	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	first, err := svc.CreatePost("emma_parent", model.Parent, "How do you practice sight words?")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Minute) }
	second, err := svc.CreatePost("testuser", model.Volunteer, "Flashcards work well for us.")
	require.NoError(t, err)

	posts := svc.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	// id 由毫秒时间戳派生
	assert.Equal(t, "1755684000000", first.ID)
}

func TestRepliesGroupedByPost(t *testing.T) {
	svc, _ := newCommunityService()

	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	post, err := svc.CreatePost("emma_parent", model.Parent, "Any tips for alphabet tracing?")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Second) }
	_, err = svc.CreateReply(post.ID, "testuser", model.Volunteer, "Short daily sessions help.")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Second) }
	_, err = svc.CreateReply("other-post", "testuser", model.Volunteer, "unrelated")
	require.NoError(t, err)

	replies := svc.RepliesFor(post.ID)
	require.Len(t, replies, 1)
	assert.Equal(t, "Short daily sessions help.", replies[0].Text)
}

func TestCommunityRejectsEmptyText(t *testing.T) {
	svc, _ := newCommunityService()

	_, err := svc.CreatePost("a", model.Parent, "")
	assert.Error(t, err)

	_, err = svc.CreateReply("", "a", model.Parent, "text")
	assert.Error(t, err)
}

func TestCommunityMalformedRecordFailsClosed(t *testing.T) {
	svc, raw := newCommunityService()

	require.NoError(t, raw.Write(store.CommunityPostsKey, "[{bad json"))
	assert.Empty(t, svc.Posts())

	// 下一次发帖覆盖损坏记录
	_, err := svc.CreatePost("emma_parent", model.Parent, "fresh start")
	require.NoError(t, err)
	assert.Len(t, svc.Posts(), 1)
}
