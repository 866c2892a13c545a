package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Assignment 呈现给学生/家长的作业定义。内置目录和管理员自建的
// 自定义作业共用这个形态，按语言各存一份。
type Assignment struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Description   string     `json:"description"`
	Subject       string     `json:"subject"`
	DueDate       string     `json:"dueDate"` // 展示格式 D/M/YYYY 23:00
	EstimatedTime string     `json:"estimatedTime"`
	Difficulty    Difficulty `json:"difficulty"`
	Objectives    []string   `json:"objectives"`
	Materials     []string   `json:"materials"`
	Instructions  []string   `json:"instructions"`
	Completed     bool       `json:"completed"`
	ButtonText    string     `json:"buttonText"`
	PointReward   int        `json:"pointReward"`
	IconName      string     `json:"iconName"`
}

// WeeklyTask 自建作业派生出的每周任务列表条目
type WeeklyTask struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Completed   bool   `json:"completed"`
	IsPrimary   bool   `json:"isPrimary"`
	IconName    string `json:"icon"`
	Subject     string `json:"subject"`
	PointReward int    `json:"pointReward"`
}
