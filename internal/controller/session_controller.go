package controller

import (
	"errors"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// List godoc
// @Summary 辅导场次列表
// @Description 可按 status 过滤：upcoming/live/completed
// @Tags 辅导
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "状态过滤"
// @Success 200 {object} util.Response{data=[]model.TutoringSession} "成功"
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	if status := ctx.Query("status"); status != "" {
		util.Success(ctx, c.SessionService.ByStatus(model.SessionStatus(status)))
		return
	}
	util.Success(ctx, c.SessionService.All())
}

// Stats godoc
// @Summary 场次统计
// @Description 各状态数量及今天/明天的排期数
// @Tags 辅导
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.SessionStats} "成功"
// @Router /api/sessions/stats [get]
func (c *SessionController) Stats(ctx *gin.Context) {
	util.Success(ctx, c.SessionService.Stats())
}

// CreateSessionRequest 新建场次表单
type CreateSessionRequest struct {
	Title         string `json:"title" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	ScheduledTime string `json:"scheduledTime" binding:"required"`
	Duration      int    `json:"duration"`
	Description   string `json:"description"`
}

// Create godoc
// @Summary 新建辅导场次
// @Tags 辅导
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateSessionRequest true "场次表单"
// @Success 201 {object} util.Response{data=model.TutoringSession} "创建成功"
// @Failure 400 {object} util.Response "字段缺失"
// @Router /api/admin/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Create(req.Title, req.Subject, req.ScheduledTime, req.Description, req.Duration)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, session)
}

// StatusRequest 场次状态流转
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=upcoming live completed"`
}

// UpdateStatus godoc
// @Summary 更新场次状态
// @Tags 辅导
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "场次ID"
// @Param   body body StatusRequest true "目标状态"
// @Success 200 {object} util.Response{data=model.TutoringSession} "成功"
// @Failure 404 {object} util.Response "场次不存在"
// @Router /api/admin/sessions/{id}/status [put]
func (c *SessionController) UpdateStatus(ctx *gin.Context) {
	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.UpdateStatus(ctx.Param("id"), model.SessionStatus(req.Status))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// Delete godoc
// @Summary 删除场次
// @Tags 辅导
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "场次ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "场次不存在"
// @Router /api/admin/sessions/{id} [delete]
func (c *SessionController) Delete(ctx *gin.Context) {
	if err := c.SessionService.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
