package store

import (
	"testing"

	"reach_edu_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Read("missing")
	assert.False(t, ok)

	require.NoError(t, s.Write("assignment_1_grade", "7.5"))
	v, ok := s.Read("assignment_1_grade")
	require.True(t, ok)
	assert.Equal(t, "7.5", v)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Write("k", "first"))
	require.NoError(t, s.Write("k", "second"))

	v, ok := s.Read("k")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestMemoryStoreRemoveMissingIsNoop(t *testing.T) {
	s := NewMemoryStore()

	s.Remove("never-written")

	require.NoError(t, s.Write("k", "v"))
	s.Remove("k")
	_, ok := s.Read("k")
	assert.False(t, ok)
}

func TestInstrumentedCountsOps(t *testing.T) {
	s := Instrumented(NewMemoryStore())

	writesBefore := testutil.ToFloat64(monitoring.RecordStoreOps.WithLabelValues("write"))
	readsBefore := testutil.ToFloat64(monitoring.RecordStoreOps.WithLabelValues("read"))
	missesBefore := testutil.ToFloat64(monitoring.RecordStoreMisses)

	require.NoError(t, s.Write("k", "v"))
	_, ok := s.Read("k")
	assert.True(t, ok)
	_, ok = s.Read("absent")
	assert.False(t, ok)
	s.Remove("k")

	assert.Equal(t, writesBefore+1, testutil.ToFloat64(monitoring.RecordStoreOps.WithLabelValues("write")))
	assert.Equal(t, readsBefore+2, testutil.ToFloat64(monitoring.RecordStoreOps.WithLabelValues("read")))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(monitoring.RecordStoreMisses))
}

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "assignment_files_2", SubmissionFilesKey("2"))
	assert.Equal(t, "assignment_2_grade", GradeKey("2"))
	assert.Equal(t, "assignment_2_feedback", FeedbackKey("2"))
	assert.Equal(t, "assignment_registration_3", RegistrationKey("3"))
	assert.Equal(t, "custom_assignments_zh", CustomAssignmentsKey("zh"))
	assert.Equal(t, "custom_weekly_tasks_en", CustomWeeklyTasksKey("en"))
	assert.Equal(t, "leaderboard-opt-out", LeaderboardOptOutKey)
}
