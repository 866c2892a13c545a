package controller

import (
	"strconv"

	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Standings godoc
// @Summary 积分排行榜
// @Description 按积分降序；当前档案已退出排行榜时返回空表
// @Tags 排行榜
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回条数" default(10)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Standings(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	entries, err := c.LeaderboardService.Standings(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"optedOut": c.LeaderboardService.OptedOut(),
		"entries":  entries,
	})
}

// OptOutRequest 排行榜退出开关
type OptOutRequest struct {
	OptOut *bool `json:"optOut" binding:"required"`
}

// SetOptOut godoc
// @Summary 设置排行榜退出标记
// @Description 只影响当前档案看到的榜单
// @Tags 排行榜
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body OptOutRequest true "退出标记"
// @Success 200 {object} util.Response "成功"
// @Router /api/leaderboard/opt-out [put]
func (c *LeaderboardController) SetOptOut(ctx *gin.Context) {
	var req OptOutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.LeaderboardService.SetOptOut(*req.OptOut)
	util.Success(ctx, nil)
}
