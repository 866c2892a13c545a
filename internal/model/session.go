package model

type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionLive      SessionStatus = "live"
	SessionCompleted SessionStatus = "completed"
)

// TutoringSession 在线辅导场次，整表 JSON 存在 tutoring_sessions 键下
type TutoringSession struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Subject       string        `json:"subject"`
	ScheduledTime string        `json:"scheduledTime"`
	Duration      int           `json:"duration"` // 分钟
	Status        SessionStatus `json:"status"`
	Description   string        `json:"description"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// SessionStats 场次统计
type SessionStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Live      int `json:"live"`
	Completed int `json:"completed"`
	Today     int `json:"today"`
	Tomorrow  int `json:"tomorrow"`
}
