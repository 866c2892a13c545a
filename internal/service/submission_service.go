package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadProgress 上传进度回调，percent 取 0–100
type UploadProgress func(percent int)

// SubmissionService 作业提交上传。类型和大小在这里把关，
// 通过后才会进 AssignmentStateService；归档和视频探测都是
// 尽力而为，失败不影响提交本身。
type SubmissionService struct {
	State   *AssignmentStateService
	Storage *StorageService

	// 模拟上传耗时，测试时替换掉
	sleep func(time.Duration)
}

func NewSubmissionService(state *AssignmentStateService, storage *StorageService) *SubmissionService {
	return &SubmissionService{State: state, Storage: storage, sleep: time.Sleep}
}

// Upload 校验并登记一个提交文件。
// 进度走模拟节奏：内容其实一次性就位，但分段上报让前端的
// 进度条有东西可画，图片另外加一段"识别中"的停顿。
func (s *SubmissionService) Upload(ctx context.Context, assignmentID, fileName string, payload []byte, onProgress UploadProgress) (*model.UploadedFile, error) {
	if int64(len(payload)) > util.MaxSubmissionFileSize {
		return nil, util.ErrFileTooLarge
	}

	mimeType, err := util.ValidateMimeType(bytes.NewReader(payload), util.SubmissionMimeTypes)
	if err != nil {
		logger.Log.Warn("rejected submission file",
			zap.String("assignmentId", assignmentID),
			zap.String("name", fileName),
			zap.String("detected", mimeType))
		return nil, util.ErrFileTypeUnsupported
	}

	s.simulateProgress(onProgress, util.IsImage(mimeType))

	file := model.UploadedFile{
		ID:        uuid.New().String(),
		Name:      fileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(payload)),
		DataURL:   util.EncodeDataURL(mimeType, payload),
	}

	if util.IsVideo(mimeType) {
		file.Video = s.probeVideo(fileName, payload)
	}

	if s.Storage != nil {
		if _, err := s.Storage.ArchiveSubmission(ctx, assignmentID, file.ID, fileName, mimeType, payload); err != nil {
			logger.Log.Warn("submission archive failed, keeping inline copy only",
				zap.String("assignmentId", assignmentID), zap.Error(err))
		}
	}

	s.State.AddFile(assignmentID, file)
	return &file, nil
}

// Remove 移除一个提交文件，归档副本一并清理（尽力而为）
func (s *SubmissionService) Remove(ctx context.Context, assignmentID, fileID string) []model.UploadedFile {
	if s.Storage != nil {
		for _, f := range s.State.Load(assignmentID).Files {
			if f.ID == fileID {
				if err := s.Storage.RemoveSubmission(ctx, assignmentID, f.ID, f.Name); err != nil {
					logger.Log.Warn("failed to remove archived submission",
						zap.String("assignmentId", assignmentID), zap.Error(err))
				}
				break
			}
		}
	}
	return s.State.RemoveFile(assignmentID, fileID)
}

// simulateProgress 分段上报进度；图片在 100% 前多停一拍模拟文字识别
func (s *SubmissionService) simulateProgress(onProgress UploadProgress, withOCR bool) {
	if onProgress == nil {
		return
	}
	for percent := 10; percent <= 90; percent += 20 {
		onProgress(percent)
		s.sleep(120 * time.Millisecond)
	}
	if withOCR {
		s.sleep(600 * time.Millisecond)
	}
	onProgress(100)
}

// probeVideo 落一份临时文件给 ffprobe，探不出来就算了
func (s *SubmissionService) probeVideo(fileName string, payload []byte) *model.VideoMeta {
	tmp := filepath.Join(os.TempDir(), "reach_probe_"+uuid.New().String()+filepath.Ext(fileName))
	if err := os.WriteFile(tmp, payload, 0600); err != nil {
		logger.Log.Warn("failed to stage video for probing", zap.Error(err))
		return nil
	}
	defer os.Remove(tmp)

	info, err := util.ProbeVideo(tmp)
	if err != nil {
		logger.Log.Warn("video probe failed, submitting without metadata", zap.Error(err))
		return nil
	}
	return &model.VideoMeta{Duration: info.Duration, Width: info.Width, Height: info.Height}
}
