package service

import (
	"testing"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubStaleUntilFocus(t *testing.T) {
	state, _ := newStateService()
	hub := NewRefreshHub(state)

	// 家长视图和义工视图看同一份作业
	hub.Mount("parent", []string{"1"})
	hub.Mount("volunteer", []string{"1"})

	// 义工评分
	state.RecordGrade("1", 9)

	// 家长视图没聚焦之前，快照还是旧的
	snap, err := hub.Snapshot("parent")
	require.NoError(t, err)
	assert.Nil(t, snap["1"].Grade)

	// 聚焦后整组重读，新评分可见
	snap, err = hub.Focus("parent")
	require.NoError(t, err)
	require.NotNil(t, snap["1"].Grade)
	assert.Equal(t, 9.0, *snap["1"].Grade)
}

func TestHubMountHydratesImmediately(t *testing.T) {
	state, _ := newStateService()
	state.RecordFeedback("2", "nice work")

	hub := NewRefreshHub(state)
	snap := hub.Mount("parent", []string{"1", "2"})

	assert.Equal(t, "nice work", snap["2"].Feedback)
	assert.Empty(t, snap["1"].Feedback)
}

func TestHubUnmountedView(t *testing.T) {
	state, _ := newStateService()
	hub := NewRefreshHub(state)

	_, err := hub.Focus("ghost")
	assert.ErrorIs(t, err, util.ErrViewNotMounted)

	_, err = hub.Snapshot("ghost")
	assert.ErrorIs(t, err, util.ErrViewNotMounted)

	hub.Mount("v", []string{"1"})
	hub.Unmount("v")
	_, err = hub.Snapshot("v")
	assert.ErrorIs(t, err, util.ErrViewNotMounted)
}

func TestHubApplyLocalImmediate(t *testing.T) {
	state, _ := newStateService()
	hub := NewRefreshHub(state)
	hub.Mount("submit", []string{"1"})

	// 发起写入的视图立即看到自己的状态，不用等下一次聚焦
	next := state.Load("1")
	next.Files = append(next.Files, model.UploadedFile{ID: "f1", Name: "a.jpg"})
	hub.ApplyLocal("submit", next)

	snap, err := hub.Snapshot("submit")
	require.NoError(t, err)
	assert.Len(t, snap["1"].Files, 1)
}
