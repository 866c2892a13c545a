package store

import "fmt"

// 持久化键布局。分区方式不可变动：每个键对应至多一条逻辑记录。
const (
	CommunityPostsKey    = "community_user_posts"
	CommunityRepliesKey  = "community_user_replies"
	LeaderboardOptOutKey = "leaderboard-opt-out"
	TutoringSessionsKey  = "tutoring_sessions"
)

// SubmissionFilesKey 作业提交文件列表（UploadedFile 的 JSON 数组）
func SubmissionFilesKey(assignmentID string) string {
	return "assignment_files_" + assignmentID
}

// GradeKey 作业评分（字符串化的数字）
func GradeKey(assignmentID string) string {
	return fmt.Sprintf("assignment_%s_grade", assignmentID)
}

// FeedbackKey 作业评语（纯文本）
func FeedbackKey(assignmentID string) string {
	return fmt.Sprintf("assignment_%s_feedback", assignmentID)
}

// RegistrationKey 报名标记（"true" / "false"）
func RegistrationKey(assignmentID string) string {
	return "assignment_registration_" + assignmentID
}

// CustomAssignmentsKey 管理员自建作业定义（按语言分开存储）
func CustomAssignmentsKey(lang string) string {
	return "custom_assignments_" + lang
}

// CustomWeeklyTasksKey 自建作业派生的每周任务条目
func CustomWeeklyTasksKey(lang string) string {
	return "custom_weekly_tasks_" + lang
}
