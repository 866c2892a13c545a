package controller

import (
	"errors"

	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SyncController 跨视图状态同步。没有推送通道：视图挂载时做首次
// 水合读，之后只有重新聚焦才触发整组重读，快照在失焦期间允许过期。
type SyncController struct {
	Hub *service.RefreshHub
}

func NewSyncController(hub *service.RefreshHub) *SyncController {
	return &SyncController{Hub: hub}
}

// MountRequest 视图挂载请求
type MountRequest struct {
	ViewID        string   `json:"viewId" binding:"required"`
	AssignmentIDs []string `json:"assignmentIds" binding:"required"`
}

// Mount godoc
// @Summary 挂载视图
// @Description 登记视图展示的作业集合并返回首次水合快照
// @Tags 同步
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body MountRequest true "视图及作业集合"
// @Success 200 {object} util.Response{data=object} "快照"
// @Router /api/sync/mount [post]
func (c *SyncController) Mount(ctx *gin.Context) {
	var req MountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.Hub.Mount(req.ViewID, req.AssignmentIDs))
}

// Focus godoc
// @Summary 视图聚焦
// @Description 重新读取该视图全部作业的状态并返回新快照
// @Tags 同步
// @Produce  json
// @Security BearerAuth
// @Param   viewId path string true "视图ID"
// @Success 200 {object} util.Response{data=object} "新快照"
// @Failure 404 {object} util.Response "视图未挂载"
// @Router /api/sync/{viewId}/focus [post]
func (c *SyncController) Focus(ctx *gin.Context) {
	snapshot, err := c.Hub.Focus(ctx.Param("viewId"))
	if err != nil {
		c.hubError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Snapshot godoc
// @Summary 当前快照
// @Description 返回视图上次水合的快照，失焦期间可能落后于存储
// @Tags 同步
// @Produce  json
// @Security BearerAuth
// @Param   viewId path string true "视图ID"
// @Success 200 {object} util.Response{data=object} "快照"
// @Failure 404 {object} util.Response "视图未挂载"
// @Router /api/sync/{viewId} [get]
func (c *SyncController) Snapshot(ctx *gin.Context) {
	snapshot, err := c.Hub.Snapshot(ctx.Param("viewId"))
	if err != nil {
		c.hubError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Unmount godoc
// @Summary 卸载视图
// @Tags 同步
// @Produce  json
// @Security BearerAuth
// @Param   viewId path string true "视图ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/sync/{viewId} [delete]
func (c *SyncController) Unmount(ctx *gin.Context) {
	c.Hub.Unmount(ctx.Param("viewId"))
	util.Success(ctx, nil)
}

func (c *SyncController) hubError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrViewNotMounted) {
		util.Error(ctx, 404, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}
