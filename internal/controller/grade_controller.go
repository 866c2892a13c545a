package controller

import (
	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GradeController 义工端评分与评语。分数范围在这一层把关：
// 下层写入器不再复核。
type GradeController struct {
	StateService *service.AssignmentStateService
}

func NewGradeController(stateService *service.AssignmentStateService) *GradeController {
	return &GradeController{StateService: stateService}
}

// GradeRequest 评分请求，0–10 允许小数
type GradeRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// RecordGrade godoc
// @Summary 记录评分
// @Description 分数须在 0–10 之间，允许小数；覆盖已有评分
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Param   body body GradeRequest true "分数"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "分数超出范围"
// @Router /api/assignments/{id}/grade [put]
func (c *GradeController) RecordGrade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if *req.Score < 0 || *req.Score > 10 {
		util.BadRequest(ctx, util.ErrInvalidScore.Error())
		return
	}

	c.StateService.RecordGrade(ctx.Param("id"), *req.Score)
	util.Success(ctx, nil)
}

// FeedbackRequest 评语请求，允许空串（等同清空展示）
type FeedbackRequest struct {
	Text string `json:"text"`
}

// RecordFeedback godoc
// @Summary 记录评语
// @Description 评语独立于评分存储，覆盖已有评语
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Param   body body FeedbackRequest true "评语"
// @Success 200 {object} util.Response "成功"
// @Router /api/assignments/{id}/feedback [put]
func (c *GradeController) RecordFeedback(ctx *gin.Context) {
	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.StateService.RecordFeedback(ctx.Param("id"), req.Text)
	util.Success(ctx, nil)
}

// RegistrationRequest 报名标记
type RegistrationRequest struct {
	Registered *bool `json:"registered" binding:"required"`
}

// SetRegistration godoc
// @Summary 设置报名标记
// @Description 感兴趣类作业的"提醒我"开关
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Param   body body RegistrationRequest true "报名状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/assignments/{id}/registration [put]
func (c *GradeController) SetRegistration(ctx *gin.Context) {
	var req RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.StateService.SetRegistration(ctx.Param("id"), *req.Registered)
	util.Success(ctx, nil)
}
