package controller

import (
	"errors"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SignupController 注册向导的 HTTP 入口。每个端点对应向导的一个
// 状态提交，状态不匹配时返回 409，流程丢失/过期返回 404。
type SignupController struct {
	SignupService *service.SignupService
	AuthService   *service.AuthService
}

func NewSignupController(signupService *service.SignupService, authService *service.AuthService) *SignupController {
	return &SignupController{SignupService: signupService, AuthService: authService}
}

// Start godoc
// @Summary 开始注册流程
// @Description 创建一次新的注册向导流程，初始状态为 input
// @Tags 注册
// @Produce  json
// @Success 201 {object} util.Response{data=service.SignupFlow} "创建成功"
// @Router /api/signup [post]
func (c *SignupController) Start(ctx *gin.Context) {
	util.Created(ctx, c.SignupService.Start())
}

// IdentifierRequest 提交注册标识符
type IdentifierRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// SubmitIdentifier godoc
// @Summary 提交标识符
// @Description 8位数字按手机号、含@按邮箱、其余按用户名处理；已有账号转去密码步
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body IdentifierRequest true "标识符"
// @Success 200 {object} util.Response{data=service.SignupFlow} "成功"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Failure 409 {object} util.Response "当前状态不接受该操作"
// @Router /api/signup/{id}/identifier [post]
func (c *SignupController) SubmitIdentifier(ctx *gin.Context) {
	var req IdentifierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	flow, err := c.SignupService.SubmitIdentifier(ctx.Param("id"), req.Identifier)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, flow)
}

// VerificationRequest 提交验证码
type VerificationRequest struct {
	Code string `json:"code" binding:"required"`
}

// SubmitVerification godoc
// @Summary 提交验证码
// @Description 验证码错误时流程停留在原状态，可重复提交
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body VerificationRequest true "验证码"
// @Success 200 {object} util.Response{data=service.SignupFlow} "成功"
// @Failure 400 {object} util.Response "验证码不匹配"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Router /api/signup/{id}/verification [post]
func (c *SignupController) SubmitVerification(ctx *gin.Context) {
	var req VerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	flow, err := c.SignupService.SubmitVerification(ctx.Param("id"), req.Code)
	if err != nil {
		if errors.Is(err, util.ErrVerificationFailed) {
			util.BadRequest(ctx, "验证码不匹配")
		} else {
			c.flowError(ctx, err)
		}
		return
	}
	util.Success(ctx, flow)
}

// PasswordRequest 老用户密码校验
type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// SubmitPassword godoc
// @Summary 提交密码（已有账号分支）
// @Description 密码通过后流程收束到 complete 并直接发放令牌
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body PasswordRequest true "密码"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "密码错误"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Router /api/signup/{id}/password [post]
func (c *SignupController) SubmitPassword(ctx *gin.Context) {
	var req PasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.SignupService.SubmitPassword(ctx.Param("id"), req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "账号或密码错误")
		} else {
			c.flowError(ctx, err)
		}
		return
	}
	c.complete(ctx, user)
}

// RoleRequest 角色选择
type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=parent volunteer"`
}

// ChooseRole godoc
// @Summary 选择角色
// @Description 家长转去 parent-details，义工转去 volunteer-details
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body RoleRequest true "角色"
// @Success 200 {object} util.Response{data=service.SignupFlow} "成功"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Failure 409 {object} util.Response "当前状态不接受该操作"
// @Router /api/signup/{id}/role [post]
func (c *SignupController) ChooseRole(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	flow, err := c.SignupService.ChooseRole(ctx.Param("id"), model.UserRole(req.Role))
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, flow)
}

// SubmitParentDetails godoc
// @Summary 提交家长资料
// @Description 建号并发放令牌，流程收束到 complete
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body service.ParentDetails true "家长资料"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Failure 409 {object} util.Response "用户名已被注册"
// @Router /api/signup/{id}/parent-details [post]
func (c *SignupController) SubmitParentDetails(ctx *gin.Context) {
	var details service.ParentDetails
	if err := ctx.ShouldBindJSON(&details); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.SignupService.SubmitParentDetails(ctx.Param("id"), details)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	c.complete(ctx, user)
}

// SubmitVolunteerDetails godoc
// @Summary 提交义工资料
// @Tags 注册
// @Accept  json
// @Produce  json
// @Param   id path string true "流程ID"
// @Param   body body service.VolunteerDetails true "义工资料"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Failure 409 {object} util.Response "用户名已被注册"
// @Router /api/signup/{id}/volunteer-details [post]
func (c *SignupController) SubmitVolunteerDetails(ctx *gin.Context) {
	var details service.VolunteerDetails
	if err := ctx.ShouldBindJSON(&details); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.SignupService.SubmitVolunteerDetails(ctx.Param("id"), details)
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	c.complete(ctx, user)
}

// Back godoc
// @Summary 返回上一步
// @Description 返回目标按状态写死：verification/password 回 input 并清空已填内容，role 回 verification，details 回 role
// @Tags 注册
// @Produce  json
// @Param   id path string true "流程ID"
// @Success 200 {object} util.Response{data=service.SignupFlow} "成功"
// @Failure 404 {object} util.Response "流程不存在或已过期"
// @Failure 409 {object} util.Response "当前状态没有上一步"
// @Router /api/signup/{id}/back [post]
func (c *SignupController) Back(ctx *gin.Context) {
	flow, err := c.SignupService.Back(ctx.Param("id"))
	if err != nil {
		c.flowError(ctx, err)
		return
	}
	util.Success(ctx, flow)
}

func (c *SignupController) complete(ctx *gin.Context, user *model.User) {
	token, err := c.AuthService.TokenFor(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"token": token, "user": user})
}

func (c *SignupController) flowError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrWizardNotFound):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrWrongWizardStep):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrUsernameTaken):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrRequiredFields):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
