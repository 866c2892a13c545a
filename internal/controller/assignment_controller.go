package controller

import (
	"errors"
	"strconv"

	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// lang query 参数，只认 en/zh，其余回落 en
func requestLang(ctx *gin.Context) string {
	if ctx.Query("lang") == "zh" {
		return "zh"
	}
	return "en"
}

// List godoc
// @Summary 作业列表
// @Description 内置目录加自建作业，标题按报名状态渲染
// @Tags 作业
// @Produce  json
// @Param   lang query string false "语言 en/zh" default(en)
// @Success 200 {object} util.Response{data=[]model.Assignment} "成功"
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	util.Success(ctx, c.AssignmentService.List(requestLang(ctx)))
}

// Get godoc
// @Summary 作业详情
// @Tags 作业
// @Produce  json
// @Param   id path int true "作业ID"
// @Param   lang query string false "语言 en/zh" default(en)
// @Success 200 {object} util.Response{data=model.Assignment} "成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	assignment, err := c.AssignmentService.Get(requestLang(ctx), id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, assignment)
}

// WeeklyTasks godoc
// @Summary 每周任务列表
// @Description 自建作业派生的每周任务条目
// @Tags 作业
// @Produce  json
// @Param   lang query string false "语言 en/zh" default(en)
// @Success 200 {object} util.Response{data=[]model.WeeklyTask} "成功"
// @Router /api/weekly-tasks [get]
func (c *AssignmentController) WeeklyTasks(ctx *gin.Context) {
	util.Success(ctx, c.AssignmentService.WeeklyTasks(requestLang(ctx)))
}

// CreateCustom godoc
// @Summary 新建自定义作业
// @Description 管理端建号：英文版加中文镜像同时落库，截止日期格式 YYYYMMDD
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateCustomRequest true "作业表单"
// @Success 201 {object} util.Response{data=model.Assignment} "创建成功"
// @Failure 400 {object} util.Response "字段缺失或日期非法"
// @Router /api/admin/assignments [post]
func (c *AssignmentController) CreateCustom(ctx *gin.Context) {
	var req service.CreateCustomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.CreateCustom(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRequiredFields), errors.Is(err, util.ErrInvalidDateFormat):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, assignment)
}

// ClearData godoc
// @Summary 清除作业数据
// @Description 依次移除提交文件、评分、评语三个记录。作业不存在也按成功处理，清除本身幂等。
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "作业ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/assignments/{id}/data [delete]
func (c *AssignmentController) ClearData(ctx *gin.Context) {
	c.AssignmentService.ClearData(ctx.Param("id"))
	util.Success(ctx, nil)
}
