package service

import (
	"testing"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateService() (*AssignmentStateService, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return NewAssignmentStateService(s), s
}

func TestLoadEmptyStateGivesDefaults(t *testing.T) {
	svc, _ := newStateService()

	state := svc.Load("1")

	assert.Equal(t, "1", state.AssignmentID)
	assert.Empty(t, state.Files)
	assert.NotNil(t, state.Files)
	assert.Nil(t, state.Grade)
	assert.Equal(t, "", state.Feedback)
	assert.False(t, state.Registered)
	assert.False(t, state.Graded())
}

func TestAddAndRemoveFile(t *testing.T) {
	svc, _ := newStateService()

	files := svc.AddFile("1", model.UploadedFile{ID: "f1", Name: "worksheet.jpg", MimeType: "image/jpeg", SizeBytes: 500000})
	require.Len(t, files, 1)

	files = svc.AddFile("1", model.UploadedFile{ID: "f2", Name: "reading.mp4", MimeType: "video/mp4"})
	require.Len(t, files, 2)

	// 重启后重新水合，文件完整
	state := svc.Load("1")
	require.Len(t, state.Files, 2)
	assert.Equal(t, "worksheet.jpg", state.Files[0].Name)
	assert.Equal(t, int64(500000), state.Files[0].SizeBytes)

	files = svc.RemoveFile("1", "f1")
	require.Len(t, files, 1)
	assert.Equal(t, "f2", files[0].ID)

	// 不存在的 id 也不报错
	files = svc.RemoveFile("1", "nope")
	assert.Len(t, files, 1)
}

func TestRecordGradeRoundTrip(t *testing.T) {
	svc, raw := newStateService()

	svc.RecordGrade("2", 7.5)

	stored, ok := raw.Read(store.GradeKey("2"))
	require.True(t, ok)
	assert.Equal(t, "7.5", stored)

	state := svc.Load("2")
	require.NotNil(t, state.Grade)
	assert.Equal(t, 7.5, *state.Grade)
	assert.True(t, state.Graded())
}

func TestGradeWithoutSubmissionAllowed(t *testing.T) {
	svc, _ := newStateService()

	// 没有任何提交文件时照样可以评分
	svc.RecordGrade("9", 9)
	svc.RecordFeedback("9", "Great job!")

	state := svc.Load("9")
	assert.Empty(t, state.Files)
	require.NotNil(t, state.Grade)
	assert.Equal(t, 9.0, *state.Grade)
	assert.Equal(t, "Great job!", state.Feedback)
}

func TestMalformedRecordsTreatedAsAbsent(t *testing.T) {
	svc, raw := newStateService()

	require.NoError(t, raw.Write(store.SubmissionFilesKey("1"), "{not json"))
	require.NoError(t, raw.Write(store.GradeKey("1"), "not-a-number"))

	state := svc.Load("1")
	assert.Empty(t, state.Files)
	assert.Nil(t, state.Grade)
}

func TestClearAssignmentRestoresDefaults(t *testing.T) {
	svc, raw := newStateService()

	svc.AddFile("1", model.UploadedFile{ID: "f1", Name: "a.pdf"})
	svc.RecordGrade("1", 8)
	svc.RecordFeedback("1", "well done")
	svc.SetRegistration("3", true)

	svc.ClearAssignment("1")

	state := svc.Load("1")
	assert.Empty(t, state.Files)
	assert.Nil(t, state.Grade)
	assert.Equal(t, "", state.Feedback)

	// 清除只动自己作业的三个键，报名标记属于另一个作业
	_, ok := raw.Read(store.RegistrationKey("3"))
	assert.True(t, ok)

	// 幂等
	svc.ClearAssignment("1")
	assert.Empty(t, svc.Load("1").Files)
}

func TestFeedbackAndGradeIndependent(t *testing.T) {
	svc, _ := newStateService()

	svc.RecordFeedback("4", "keep practicing")

	state := svc.Load("4")
	assert.Nil(t, state.Grade)
	assert.False(t, state.Graded())
	assert.Equal(t, "keep practicing", state.Feedback)
}
