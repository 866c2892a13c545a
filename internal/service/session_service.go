package service

import (
	"encoding/json"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService 在线辅导场次。所有场次整块 JSON 存在一个键下，
// 读-改-写整表覆盖，和其余记录一样后写者胜。
type SessionService struct {
	Store store.Store

	now func() time.Time
}

func NewSessionService(s store.Store) *SessionService {
	return &SessionService{Store: s, now: time.Now}
}

// All 全部场次，读不到或损坏一律空表
func (s *SessionService) All() []model.TutoringSession {
	sessions := []model.TutoringSession{}
	raw, ok := s.Store.Read(store.TutoringSessionsKey)
	if !ok {
		return sessions
	}
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		logger.Log.Warn("malformed session record, treating as absent", zap.Error(err))
		return []model.TutoringSession{}
	}
	return sessions
}

// ByStatus 按状态过滤
func (s *SessionService) ByStatus(status model.SessionStatus) []model.TutoringSession {
	out := []model.TutoringSession{}
	for _, sess := range s.All() {
		if sess.Status == status {
			out = append(out, sess)
		}
	}
	return out
}

// Create 新建场次，id 唯一、时间戳由服务端填
func (s *SessionService) Create(title, subject, scheduledTime, description string, duration int) (*model.TutoringSession, error) {
	if title == "" || subject == "" || scheduledTime == "" {
		return nil, util.ErrRequiredFields
	}
	now := s.now().Format(time.RFC3339)
	session := model.TutoringSession{
		ID:            "session_" + uuid.New().String(),
		Title:         title,
		Subject:       subject,
		ScheduledTime: scheduledTime,
		Duration:      duration,
		Status:        model.SessionUpcoming,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.writeAll(append(s.All(), session))
	return &session, nil
}

// UpdateStatus 场次状态流转（upcoming → live → completed）
func (s *SessionService) UpdateStatus(sessionID string, status model.SessionStatus) (*model.TutoringSession, error) {
	sessions := s.All()
	for i := range sessions {
		if sessions[i].ID == sessionID {
			sessions[i].Status = status
			sessions[i].UpdatedAt = s.now().Format(time.RFC3339)
			s.writeAll(sessions)
			return &sessions[i], nil
		}
	}
	return nil, util.ErrSessionNotFound
}

// Delete 删除场次
func (s *SessionService) Delete(sessionID string) error {
	sessions := s.All()
	kept := sessions[:0]
	for _, sess := range sessions {
		if sess.ID != sessionID {
			kept = append(kept, sess)
		}
	}
	if len(kept) == len(sessions) {
		return util.ErrSessionNotFound
	}
	s.writeAll(kept)
	return nil
}

// Stats 场次统计，含今天/明天的数量
func (s *SessionService) Stats() model.SessionStats {
	stats := model.SessionStats{}
	today := s.now()
	tomorrow := today.AddDate(0, 0, 1)

	for _, sess := range s.All() {
		stats.Total++
		switch sess.Status {
		case model.SessionUpcoming:
			stats.Upcoming++
		case model.SessionLive:
			stats.Live++
		case model.SessionCompleted:
			stats.Completed++
		}
		if t, err := time.Parse(time.RFC3339, sess.ScheduledTime); err == nil {
			if sameDay(t, today) {
				stats.Today++
			}
			if sameDay(t, tomorrow) {
				stats.Tomorrow++
			}
		}
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (s *SessionService) writeAll(sessions []model.TutoringSession) {
	raw, err := json.Marshal(sessions)
	if err != nil {
		logger.Log.Error("failed to encode sessions, write dropped", zap.Error(err))
		return
	}
	if err := s.Store.Write(store.TutoringSessionsKey, string(raw)); err != nil {
		logger.Log.Warn("record store write dropped",
			zap.String("key", store.TutoringSessionsKey), zap.Error(err))
	}
}
