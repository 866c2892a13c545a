package controller

import (
	"reach_edu_backend/internal/service"
	"reach_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// Posts godoc
// @Summary 社区发帖列表
// @Description 用户发帖，最新在前
// @Tags 社区
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserPost} "成功"
// @Router /api/community/posts [get]
func (c *CommunityController) Posts(ctx *gin.Context) {
	util.Success(ctx, c.CommunityService.Posts())
}

// Replies godoc
// @Summary 帖子回复列表
// @Tags 社区
// @Produce  json
// @Security BearerAuth
// @Param   postId path string true "帖子ID"
// @Success 200 {object} util.Response{data=[]model.UserReply} "成功"
// @Router /api/community/posts/{postId}/replies [get]
func (c *CommunityController) Replies(ctx *gin.Context) {
	util.Success(ctx, c.CommunityService.RepliesFor(ctx.Param("postId")))
}

// PostRequest 发帖/回复正文
type PostRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreatePost godoc
// @Summary 发帖
// @Description 作者和角色取自当前登录用户
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PostRequest true "正文"
// @Success 201 {object} util.Response{data=model.UserPost} "创建成功"
// @Failure 400 {object} util.Response "正文为空"
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	post, err := c.CommunityService.CreatePost(claims.Username, claims.Role, req.Text)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, post)
}

// CreateReply godoc
// @Summary 回复帖子
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   postId path string true "帖子ID"
// @Param   body body PostRequest true "正文"
// @Success 201 {object} util.Response{data=model.UserReply} "创建成功"
// @Failure 400 {object} util.Response "正文为空"
// @Router /api/community/posts/{postId}/replies [post]
func (c *CommunityController) CreateReply(ctx *gin.Context) {
	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reply, err := c.CommunityService.CreateReply(ctx.Param("postId"), claims.Username, claims.Role, req.Text)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, reply)
}
