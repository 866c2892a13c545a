package service

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 注册向导。纯内存多步流程，离开页面即放弃，无持久化、无重试语义，
// 当前步骤提交失败只能原步重交。
//
// 状态走向：
//
//	input → verification → role → parent-details | volunteer-details → complete
//	input → password → complete        （标识符命中已有账号时）
//
// 返回按状态硬编码到各自的逻辑前驱，不是通用栈。complete 是终态。
type WizardStep string

const (
	StepInput            WizardStep = "input"
	StepVerification     WizardStep = "verification"
	StepPassword         WizardStep = "password"
	StepRole             WizardStep = "role"
	StepParentDetails    WizardStep = "parent-details"
	StepVolunteerDetails WizardStep = "volunteer-details"
	StepComplete         WizardStep = "complete"
)

// IdentifierKind 注册标识符的形态分类
type IdentifierKind string

const (
	IdentifierPhone    IdentifierKind = "phone"
	IdentifierEmail    IdentifierKind = "email"
	IdentifierUsername IdentifierKind = "username"
)

var (
	phonePattern = regexp.MustCompile(`^\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ClassifyIdentifier 8位纯数字按香港本地手机号处理，带 @ 和域名后缀的
// 按邮箱，其余一律当用户名
func ClassifyIdentifier(identifier string) IdentifierKind {
	identifier = strings.TrimSpace(identifier)
	if phonePattern.MatchString(identifier) {
		return IdentifierPhone
	}
	if emailPattern.MatchString(identifier) {
		return IdentifierEmail
	}
	return IdentifierUsername
}

// SignupDirectory 向导需要的账号目录能力
type SignupDirectory interface {
	FindByIdentifier(identifier string) (*model.User, error)
	UsernameExists(username string) (bool, error)
	Create(user *model.User) error
}

// CodeSender 验证码投递通道
type CodeSender interface {
	SendEmail(to, code string) error
	SendSMS(to, code string) error
}

// LogCodeSender 演示用投递实现：不接真实邮件/短信网关，只写日志
type LogCodeSender struct{}

func (LogCodeSender) SendEmail(to, code string) error {
	logger.Log.Info("verification code dispatched (email)", zap.String("to", to))
	return nil
}

func (LogCodeSender) SendSMS(to, code string) error {
	logger.Log.Info("verification code dispatched (sms)", zap.String("to", to))
	return nil
}

// SignupFlow 一次进行中的注册流程
type SignupFlow struct {
	ID             string         `json:"id"`
	Step           WizardStep     `json:"step"`
	Identifier     string         `json:"identifier"`
	IdentifierKind IdentifierKind `json:"identifierKind"`
	Role           model.UserRole `json:"role,omitempty"`

	existing  *model.User
	code      string
	startedAt time.Time
}

const flowTTL = 30 * time.Minute

type SignupService struct {
	mu         sync.Mutex
	flows      map[string]*SignupFlow
	directory  SignupDirectory
	sender     CodeSender
	adminPhone string // 无邮箱无手机时验证码送到管理员手机
}

func NewSignupService(directory SignupDirectory, sender CodeSender, adminPhone string) *SignupService {
	return &SignupService{
		flows:      make(map[string]*SignupFlow),
		directory:  directory,
		sender:     sender,
		adminPhone: adminPhone,
	}
}

// Start 开始新流程，落在 input 状态
func (s *SignupService) Start() *SignupFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := &SignupFlow{
		ID:        uuid.New().String(),
		Step:      StepInput,
		startedAt: time.Now(),
	}
	s.flows[flow.ID] = flow
	return flow
}

// SubmitIdentifier input 状态：分类标识符并查账号目录。
// 已有账号 → password（老用户登录）；新标识符 → verification。
func (s *SignupService) SubmitIdentifier(flowID, identifier string) (*SignupFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepInput {
		return nil, util.ErrWrongWizardStep
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, util.ErrRequiredFields
	}

	flow.Identifier = identifier
	flow.IdentifierKind = ClassifyIdentifier(identifier)

	if existing, err := s.directory.FindByIdentifier(identifier); err == nil && existing != nil {
		flow.existing = existing
		flow.Step = StepPassword
		return flow, nil
	}

	flow.code = uuid.New().String()
	s.deliverCode(flow)
	flow.Step = StepVerification
	return flow, nil
}

// SubmitVerification verification 状态：码不对就留在原地重交
func (s *SignupService) SubmitVerification(flowID, code string) (*SignupFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepVerification {
		return nil, util.ErrWrongWizardStep
	}
	if code != flow.code {
		return flow, util.ErrVerificationFailed
	}
	flow.Step = StepRole
	return flow, nil
}

// SubmitPassword password 状态（老用户分支）：校验通过直接到 complete
func (s *SignupService) SubmitPassword(flowID, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepPassword || flow.existing == nil {
		return nil, util.ErrWrongWizardStep
	}
	if err := bcrypt.CompareHashAndPassword([]byte(flow.existing.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	flow.Step = StepComplete
	return flow.existing, nil
}

// ChooseRole role 状态：家长走 parent-details，义工走 volunteer-details
func (s *SignupService) ChooseRole(flowID string, role model.UserRole) (*SignupFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepRole {
		return nil, util.ErrWrongWizardStep
	}

	switch role {
	case model.Parent:
		flow.Step = StepParentDetails
	case model.Volunteer:
		flow.Step = StepVolunteerDetails
	default:
		return nil, util.ErrRequiredFields
	}
	flow.Role = role
	return flow, nil
}

type ParentDetails struct {
	Name         string `json:"name" binding:"required"`
	GuardianName string `json:"guardianName" binding:"required"`
	School       string `json:"school"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
}

type VolunteerDetails struct {
	Name     string `json:"name" binding:"required"`
	School   string `json:"school"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// SubmitParentDetails parent-details 状态：建号并收束到 complete
func (s *SignupService) SubmitParentDetails(flowID string, details ParentDetails) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepParentDetails {
		return nil, util.ErrWrongWizardStep
	}
	user, err := s.createUser(flow, model.Parent, details.Name, details.Username, details.Password, details.School, details.GuardianName)
	if err != nil {
		return nil, err
	}
	flow.Step = StepComplete
	return user, nil
}

// SubmitVolunteerDetails volunteer-details 状态
func (s *SignupService) SubmitVolunteerDetails(flowID string, details VolunteerDetails) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != StepVolunteerDetails {
		return nil, util.ErrWrongWizardStep
	}
	user, err := s.createUser(flow, model.Volunteer, details.Name, details.Username, details.Password, details.School, "")
	if err != nil {
		return nil, err
	}
	flow.Step = StepComplete
	return user, nil
}

// Back 每个状态的返回目标写死在各自的逻辑前驱上
func (s *SignupService) Back(flowID string) (*SignupFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, err := s.get(flowID)
	if err != nil {
		return nil, err
	}

	switch flow.Step {
	case StepVerification, StepPassword:
		flow.Step = StepInput
		flow.Identifier = ""
		flow.IdentifierKind = ""
		flow.existing = nil
		flow.code = ""
	case StepRole:
		flow.Step = StepVerification
	case StepParentDetails, StepVolunteerDetails:
		flow.Step = StepRole
		flow.Role = ""
	default:
		// input 没有上一步，complete 是终态
		return nil, util.ErrWrongWizardStep
	}
	return flow, nil
}

func (s *SignupService) get(flowID string) (*SignupFlow, error) {
	flow, ok := s.flows[flowID]
	if !ok {
		return nil, util.ErrWizardNotFound
	}
	if time.Since(flow.startedAt) > flowTTL {
		delete(s.flows, flowID)
		return nil, util.ErrWizardNotFound
	}
	return flow, nil
}

// deliverCode 投递偏好：邮箱 → 短信 → 管理员手机
func (s *SignupService) deliverCode(flow *SignupFlow) {
	var err error
	switch flow.IdentifierKind {
	case IdentifierEmail:
		err = s.sender.SendEmail(flow.Identifier, flow.code)
	case IdentifierPhone:
		err = s.sender.SendSMS(flow.Identifier, flow.code)
	default:
		err = s.sender.SendSMS(s.adminPhone, flow.code)
	}
	if err != nil {
		logger.Log.Error("failed to deliver verification code", zap.Error(err))
	}
}

func (s *SignupService) createUser(flow *SignupFlow, role model.UserRole, name, username, password, school, guardianName string) (*model.User, error) {
	if name == "" || username == "" || password == "" {
		return nil, util.ErrRequiredFields
	}
	taken, err := s.directory.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Username:     username,
		Password:     string(hashed),
		Role:         role,
		School:       school,
		GuardianName: guardianName,
		Verified:     true,
	}
	switch flow.IdentifierKind {
	case IdentifierEmail:
		user.Email = flow.Identifier
	case IdentifierPhone:
		user.Phone = flow.Identifier
	}

	if err := s.directory.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
