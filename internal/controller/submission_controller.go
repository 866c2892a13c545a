package controller

import (
	"errors"
	"io"
	"strconv"

	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PointLedger 作业完成积分的入账口
type PointLedger interface {
	AddPoints(userID uint, points int) error
}

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	StateService      *service.AssignmentStateService
	AssignmentService *service.AssignmentService
	Points            PointLedger
}

func NewSubmissionController(submissionService *service.SubmissionService, stateService *service.AssignmentStateService, assignmentService *service.AssignmentService, points PointLedger) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		StateService:      stateService,
		AssignmentService: assignmentService,
		Points:            points,
	}
}

// State godoc
// @Summary 作业工作状态
// @Description 提交文件、评分、评语、报名标记的完整元组，缺失项给安全缺省值
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Success 200 {object} util.Response{data=model.AssignmentState} "成功"
// @Router /api/assignments/{id}/state [get]
func (c *SubmissionController) State(ctx *gin.Context) {
	util.Success(ctx, c.StateService.Load(ctx.Param("id")))
}

// Upload godoc
// @Summary 上传提交文件
// @Description 只收图片、视频、PDF，单个上限 10MB，视频会探测时长和分辨率
// @Tags 提交
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Param   file formData file true "提交文件"
// @Success 201 {object} util.Response{data=model.UploadedFile} "上传成功"
// @Failure 400 {object} util.Response "类型不支持或超出大小限制"
// @Router /api/assignments/{id}/files [post]
func (c *SubmissionController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if header.Size > util.MaxSubmissionFileSize {
		util.BadRequest(ctx, util.ErrFileTooLarge.Error())
		return
	}

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	assignmentID := ctx.Param("id")
	firstFile := len(c.StateService.Load(assignmentID).Files) == 0

	file, err := c.SubmissionService.Upload(ctx.Request.Context(), assignmentID, header.Filename, payload, nil)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFileTooLarge), errors.Is(err, util.ErrFileTypeUnsupported):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 首个提交文件视为完成作业，发放积分；后补文件不重复发
	if firstFile {
		c.awardPoints(ctx, assignmentID)
	}

	util.Created(ctx, file)
}

// Remove godoc
// @Summary 移除提交文件
// @Description 按文件 id 过滤列表，不存在的 id 也按成功处理
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Param   fileId path string true "文件ID"
// @Success 200 {object} util.Response{data=[]model.UploadedFile} "剩余文件列表"
// @Router /api/assignments/{id}/files/{fileId} [delete]
func (c *SubmissionController) awardPoints(ctx *gin.Context, assignmentID string) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return
	}
	id, err := strconv.Atoi(assignmentID)
	if err != nil {
		return
	}
	assignment, err := c.AssignmentService.Get("en", id)
	if err != nil || assignment.PointReward == 0 {
		return
	}
	if err := c.Points.AddPoints(claims.UserID, assignment.PointReward); err != nil {
		logger.Log.Warn("failed to award points",
			zap.Uint("userId", claims.UserID), zap.Error(err))
	}
}

func (c *SubmissionController) Remove(ctx *gin.Context) {
	files := c.SubmissionService.Remove(ctx.Request.Context(), ctx.Param("id"), ctx.Param("fileId"))
	util.Success(ctx, files)
}
