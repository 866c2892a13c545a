package service

import (
	"encoding/json"
	"strconv"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// CommunityService 讨论区的用户发帖和回复。两张列表各占一个键，
// 新内容 prepend 到头部（最新在前），发出后不可编辑，不提供删除入口。
type CommunityService struct {
	Store store.Store

	// 测试里固定时间用
	now func() time.Time
}

func NewCommunityService(s store.Store) *CommunityService {
	return &CommunityService{Store: s, now: time.Now}
}

// Posts 全部用户发帖，最新在前
func (s *CommunityService) Posts() []model.UserPost {
	posts := []model.UserPost{}
	if !s.readList(store.CommunityPostsKey, &posts) {
		return []model.UserPost{}
	}
	return posts
}

// Replies 全部回复，最新在前
func (s *CommunityService) Replies() []model.UserReply {
	replies := []model.UserReply{}
	if !s.readList(store.CommunityRepliesKey, &replies) {
		return []model.UserReply{}
	}
	return replies
}

// RepliesFor 某个帖子的回复
func (s *CommunityService) RepliesFor(postID string) []model.UserReply {
	all := s.Replies()
	out := make([]model.UserReply, 0, len(all))
	for _, r := range all {
		if r.ParentPostID == postID {
			out = append(out, r)
		}
	}
	return out
}

// CreatePost id 由毫秒时间戳派生
func (s *CommunityService) CreatePost(author string, role model.UserRole, text string) (*model.UserPost, error) {
	if text == "" {
		return nil, util.ErrRequiredFields
	}
	now := s.now()
	post := model.UserPost{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Author:    author,
		Role:      role,
		Text:      text,
		CreatedAt: now.Format(time.RFC3339),
	}

	posts := append([]model.UserPost{post}, s.Posts()...)
	s.writeList(store.CommunityPostsKey, posts)
	return &post, nil
}

// CreateReply 回复挂在 parentPostId 下，同样 prepend
func (s *CommunityService) CreateReply(parentPostID, author string, role model.UserRole, text string) (*model.UserReply, error) {
	if text == "" || parentPostID == "" {
		return nil, util.ErrRequiredFields
	}
	now := s.now()
	reply := model.UserReply{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		ParentPostID: parentPostID,
		Author:       author,
		Role:         role,
		Text:         text,
		CreatedAt:    now.Format(time.RFC3339),
	}

	replies := append([]model.UserReply{reply}, s.Replies()...)
	s.writeList(store.CommunityRepliesKey, replies)
	return &reply, nil
}

func (s *CommunityService) readList(key string, out interface{}) bool {
	raw, ok := s.Store.Read(key)
	if !ok {
		return true
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Log.Warn("malformed community record, treating as absent",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CommunityService) writeList(key string, list interface{}) {
	raw, err := json.Marshal(list)
	if err != nil {
		logger.Log.Error("failed to encode community record, write dropped", zap.Error(err))
		return
	}
	if err := s.Store.Write(key, string(raw)); err != nil {
		logger.Log.Warn("record store write dropped", zap.String("key", key), zap.Error(err))
	}
}
