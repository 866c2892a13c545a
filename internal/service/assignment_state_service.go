package service

import (
	"encoding/json"
	"strconv"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// AssignmentStateService 围绕记录存储的作业状态读写器。
//
// 读侧：视图挂载时用 Load 还原完整工作状态，缺失键一律给安全缺省值。
// 写侧：每个操作只针对单键原子覆盖，唯一的多键操作 ClearAssignment
// 是顺序删除，中途失败会留下部分状态（已知且接受的缺口，不做回滚）。
// 存储层写失败在这里吞掉并记日志：本次写入丢弃，调用方继续用它
// 手里的内存状态，刷新后才会发现没有存住。
type AssignmentStateService struct {
	Store store.Store
}

func NewAssignmentStateService(s store.Store) *AssignmentStateService {
	return &AssignmentStateService{Store: s}
}

// Load 还原一个作业的完整状态元组。无副作用。
func (s *AssignmentStateService) Load(assignmentID string) model.AssignmentState {
	state := model.AssignmentState{
		AssignmentID: assignmentID,
		Files:        s.readFiles(assignmentID),
		Feedback:     "",
		Registered:   false,
	}

	if raw, ok := s.Store.Read(store.GradeKey(assignmentID)); ok {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			state.Grade = &score
		} else {
			// 损坏的评分记录等同于未评分
			logger.Log.Warn("malformed grade record, treating as absent",
				zap.String("assignmentId", assignmentID), zap.String("raw", raw))
		}
	}

	if text, ok := s.Store.Read(store.FeedbackKey(assignmentID)); ok {
		state.Feedback = text
	}

	if raw, ok := s.Store.Read(store.RegistrationKey(assignmentID)); ok {
		state.Registered = raw == "true"
	}

	return state
}

// AddFile 追加一个提交文件并回写整个列表。
// 读-改-写不加锁：目标运行时是单视图单线程，两个视图并发写
// 同一键时后写者胜，前一个追加会丢失（记录在案的限制）。
func (s *AssignmentStateService) AddFile(assignmentID string, file model.UploadedFile) []model.UploadedFile {
	files := append(s.readFiles(assignmentID), file)
	s.writeFiles(assignmentID, files)
	return files
}

// RemoveFile 按 id 过滤文件列表，其余条目保持原顺序
func (s *AssignmentStateService) RemoveFile(assignmentID, fileID string) []model.UploadedFile {
	files := s.readFiles(assignmentID)
	kept := files[:0]
	for _, f := range files {
		if f.ID != fileID {
			kept = append(kept, f)
		}
	}
	s.writeFiles(assignmentID, kept)
	return kept
}

// RecordGrade 写入评分。范围校验是调用方的责任，这里原样落盘——
// 和原行为保持一致的"有漏洞的契约"，收紧前先在控制器层把关。
func (s *AssignmentStateService) RecordGrade(assignmentID string, score float64) {
	s.write(store.GradeKey(assignmentID), strconv.FormatFloat(score, 'f', -1, 64))
}

// RecordFeedback 原文写入评语，不限长度
func (s *AssignmentStateService) RecordFeedback(assignmentID, text string) {
	s.write(store.FeedbackKey(assignmentID), text)
}

// SetRegistration 写入报名标记
func (s *AssignmentStateService) SetRegistration(assignmentID string, registered bool) {
	s.write(store.RegistrationKey(assignmentID), strconv.FormatBool(registered))
}

// ClearAssignment 管理端"清除数据"：依次删掉提交文件、评分、评语
// 三个键。非原子，中途崩溃会留下清了一半的状态，重试即可收敛。
func (s *AssignmentStateService) ClearAssignment(assignmentID string) {
	s.Store.Remove(store.SubmissionFilesKey(assignmentID))
	s.Store.Remove(store.GradeKey(assignmentID))
	s.Store.Remove(store.FeedbackKey(assignmentID))
}

func (s *AssignmentStateService) readFiles(assignmentID string) []model.UploadedFile {
	files := []model.UploadedFile{}
	raw, ok := s.Store.Read(store.SubmissionFilesKey(assignmentID))
	if !ok {
		return files
	}
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		logger.Log.Warn("malformed submission record, treating as absent",
			zap.String("assignmentId", assignmentID), zap.Error(err))
		return []model.UploadedFile{}
	}
	return files
}

func (s *AssignmentStateService) writeFiles(assignmentID string, files []model.UploadedFile) {
	raw, err := json.Marshal(files)
	if err != nil {
		logger.Log.Error("failed to encode submission files, write dropped",
			zap.String("assignmentId", assignmentID), zap.Error(err))
		return
	}
	s.write(store.SubmissionFilesKey(assignmentID), string(raw))
}

func (s *AssignmentStateService) write(key, value string) {
	if err := s.Store.Write(key, value); err != nil {
		// 有意的静默降级：用户侧看起来成功了，但刷新后不会存在
		logger.Log.Warn("record store write dropped",
			zap.String("key", key), zap.Error(err))
	}
}
