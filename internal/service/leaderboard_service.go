package service

import (
	"strconv"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// LeaderboardEntry 排行榜单行
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// LeaderboardUsers 排行榜需要的账号查询能力
type LeaderboardUsers interface {
	FindTopByPoints(limit int) ([]model.User, error)
}

// LeaderboardService 积分排行。退出标记存在当前设备档案的
// leaderboard-opt-out 键下，只影响本档案看到的榜单。
type LeaderboardService struct {
	Store store.Store
	Users LeaderboardUsers
}

func NewLeaderboardService(s store.Store, users LeaderboardUsers) *LeaderboardService {
	return &LeaderboardService{Store: s, Users: users}
}

// OptedOut 当前档案是否已退出排行榜
func (s *LeaderboardService) OptedOut() bool {
	raw, ok := s.Store.Read(store.LeaderboardOptOutKey)
	return ok && raw == "true"
}

// SetOptOut 写入退出标记
func (s *LeaderboardService) SetOptOut(optOut bool) {
	if err := s.Store.Write(store.LeaderboardOptOutKey, strconv.FormatBool(optOut)); err != nil {
		logger.Log.Warn("record store write dropped",
			zap.String("key", store.LeaderboardOptOutKey), zap.Error(err))
	}
}

// Standings 按积分排名。本档案已退出时返回空榜单（只隐藏展示，
// 不动任何账号数据）。
func (s *LeaderboardService) Standings(limit int) ([]LeaderboardEntry, error) {
	if s.OptedOut() {
		return []LeaderboardEntry{}, nil
	}

	users, err := s.Users.FindTopByPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Name:     u.Name,
			Username: u.Username,
			Points:   u.Points,
		})
	}
	return entries, nil
}
