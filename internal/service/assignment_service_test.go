package service

import (
	"testing"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignmentService() (*AssignmentService, *store.MemoryStore) {
	s := store.NewMemoryStore()
	state := NewAssignmentStateService(s)
	return NewAssignmentService(s, state), s
}

func TestIsInterestAssignment(t *testing.T) {
	assert.True(t, IsInterestAssignment("I'm interested, remind me"))
	assert.True(t, IsInterestAssignment("我感興趣，提醒我"))
	assert.True(t, IsInterestAssignment("Register now"))
	assert.False(t, IsInterestAssignment("Submit Assignment"))
	assert.False(t, IsInterestAssignment("提交作業"))
}

func TestRegisteredMarkerOnInterestAssignments(t *testing.T) {
	svc, _ := newAssignmentService()

	// id 3 是"感兴趣"类作业
	a, err := svc.Get("en", 3)
	require.NoError(t, err)
	assert.Equal(t, "Live Tutoring: Phonics Basics", a.Title)

	svc.State.SetRegistration("3", true)
	a, err = svc.Get("en", 3)
	require.NoError(t, err)
	assert.Equal(t, "Live Tutoring: Phonics Basics (registered)", a.Title)

	// 取消报名后标记消失
	svc.State.SetRegistration("3", false)
	a, err = svc.Get("en", 3)
	require.NoError(t, err)
	assert.Equal(t, "Live Tutoring: Phonics Basics", a.Title)
}

func TestMarkerNotAppliedToSubmissionAssignments(t *testing.T) {
	svc, _ := newAssignmentService()

	// 普通提交类作业即便写了报名标记也不渲染后缀
	svc.State.SetRegistration("1", true)
	a, err := svc.Get("en", 1)
	require.NoError(t, err)
	assert.Equal(t, "English Reading Comprehension", a.Title)
}

func TestCreateCustomAssignsIDsAcrossLanguages(t *testing.T) {
	svc, _ := newAssignmentService()

	req := CreateCustomRequest{
		Title:       "Sight Word Bingo",
		Subtitle:    "Play a round together",
		Description: "Print the bingo card and play with your child.",
		Subject:     "Sight Words",
		DueDate:     "20250901",
		ButtonText:  "Submit Assignment",
		PointReward: 10,
	}

	first, err := svc.CreateCustom(req)
	require.NoError(t, err)
	assert.Equal(t, 1001, first.ID)
	assert.Equal(t, "1/9/2025 23:00", first.DueDate)

	second, err := svc.CreateCustom(req)
	require.NoError(t, err)
	assert.Equal(t, 1002, second.ID)

	// 两种语言目录都长了，且中文镜像带后缀和科目映射
	en := svc.List("en")
	zh := svc.List("zh")
	require.Len(t, en, 5)
	require.Len(t, zh, 5)
	assert.Equal(t, "Sight Word Bingo (中文版)", zh[3].Title)
	assert.Equal(t, "常見詞", zh[3].Subject)
	assert.Equal(t, first.ID, zh[3].ID)

	// 每周任务同步追加
	assert.Len(t, svc.WeeklyTasks("en"), 2)
	assert.Len(t, svc.WeeklyTasks("zh"), 2)
}

func TestCreateCustomValidation(t *testing.T) {
	svc, _ := newAssignmentService()

	base := CreateCustomRequest{
		Title:       "T",
		Subtitle:    "S",
		Description: "D",
		Subject:     "Vocabulary",
		DueDate:     "20250901",
	}

	missing := base
	missing.Title = ""
	_, err := svc.CreateCustom(missing)
	assert.ErrorIs(t, err, util.ErrRequiredFields)

	for _, bad := range []string{"2025091", "abcdefgh", "20190101", "20310101", "20250230", "20251301"} {
		req := base
		req.DueDate = bad
		_, err := svc.CreateCustom(req)
		assert.ErrorIs(t, err, util.ErrInvalidDateFormat, "dueDate=%s", bad)
	}

	// 闰日是合法日期
	req := base
	req.DueDate = "20240229"
	_, err = svc.CreateCustom(req)
	assert.NoError(t, err)
}

func TestValidDueDate(t *testing.T) {
	assert.True(t, ValidDueDate("20250831"))
	assert.True(t, ValidDueDate("20201231"))
	assert.True(t, ValidDueDate("20301231"))
	assert.False(t, ValidDueDate("20250229")) // 2025 不是闰年
	assert.False(t, ValidDueDate("20250931"))
	assert.False(t, ValidDueDate(""))
}

func TestFormatDueDate(t *testing.T) {
	// 日和月不补零
	assert.Equal(t, "1/9/2025 23:00", FormatDueDate("20250901"))
	assert.Equal(t, "23/12/2025 23:00", FormatDueDate("20251223"))
	assert.Equal(t, "", FormatDueDate("bad"))
}

func TestClearDataThroughAssignmentService(t *testing.T) {
	svc, raw := newAssignmentService()

	svc.State.AddFile("2", model.UploadedFile{ID: "f", Name: "trace.pdf"})
	svc.State.RecordGrade("2", 6)
	svc.ClearData("2")

	_, ok := raw.Read(store.SubmissionFilesKey("2"))
	assert.False(t, ok)
	_, ok = raw.Read(store.GradeKey("2"))
	assert.False(t, ok)
}

func TestListSurvivesMalformedCustomRecord(t *testing.T) {
	svc, raw := newAssignmentService()

	require.NoError(t, raw.Write(store.CustomAssignmentsKey("en"), "{broken"))

	// 自建目录损坏时只剩内置目录，不报错
	assert.Len(t, svc.List("en"), 3)

	// 新建自建作业把损坏记录整个覆盖掉
	_, err := svc.CreateCustom(CreateCustomRequest{
		Title:       "T",
		Subtitle:    "S",
		Description: "D",
		Subject:     "Alphabet",
		DueDate:     "20250901",
	})
	require.NoError(t, err)
	assert.Len(t, svc.List("en"), 4)
}
