package model

// 社区发帖/回复。id 由毫秒时间戳派生，创建后不再编辑，
// 列表最新在前，整块 JSON 存记录存储。

type UserPost struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Role      UserRole `json:"role"`
	Text      string   `json:"text"`
	CreatedAt string   `json:"createdAt"`
}

type UserReply struct {
	ID           string   `json:"id"`
	ParentPostID string   `json:"parentPostId"`
	Author       string   `json:"author"`
	Role         UserRole `json:"role"`
	Text         string   `json:"text"`
	CreatedAt    string   `json:"createdAt"`
}
