package model

// 作业状态实体。这些类型不进数据库表，而是整块 JSON 存进记录存储，
// 各键独立读写，无外键约束：Grade 和 Feedback 的一致性靠约定维持。

// UploadedFile 单个提交文件。创建后不可变，只能按 id 整个移除。
// id 在一次提交内唯一，跨提交不保证。
type UploadedFile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	MimeType  string     `json:"mimeType"`
	SizeBytes int64      `json:"sizeBytes"`
	DataURL   string     `json:"dataUrl"` // 自包含编码内容
	Video     *VideoMeta `json:"video,omitempty"`
}

// VideoMeta 视频提交的探测元数据，探测失败则整体缺省
type VideoMeta struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// AssignmentSubmission 一次作业的全部提交文件
type AssignmentSubmission struct {
	AssignmentID string         `json:"assignmentId"`
	Files        []UploadedFile `json:"files"`
}

// Grade 评分，0–10 允许小数。键不存在即"未评分"。
type Grade struct {
	AssignmentID string  `json:"assignmentId"`
	Score        float64 `json:"score"`
}

// Feedback 评语，与 Grade 独立存储
type Feedback struct {
	AssignmentID string `json:"assignmentId"`
	Text         string `json:"text"`
}

// RegistrationStatus 仅用于"感兴趣/提醒我"类作业
type RegistrationStatus struct {
	AssignmentID string `json:"assignmentId"`
	Registered   bool   `json:"registered"`
}

// AssignmentState 视图挂载时 Reader 还原出的完整工作状态。
// 任何键缺失都有安全缺省值，视图不会见到"键不存在"这条错误路径。
type AssignmentState struct {
	AssignmentID string         `json:"assignmentId"`
	Files        []UploadedFile `json:"files"`
	Grade        *float64       `json:"grade"` // nil 即未评分
	Feedback     string         `json:"feedback"`
	Registered   bool           `json:"registered"`
}

// Graded 评分状态只由 grade 键是否存在决定，与提交文件无关
func (s *AssignmentState) Graded() bool {
	return s.Grade != nil
}
