package service

import (
	"testing"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeDirectory struct {
	users []*model.User
}

func (d *fakeDirectory) FindByIdentifier(identifier string) (*model.User, error) {
	for _, u := range d.users {
		if u.Email == identifier || u.Phone == identifier || u.Username == identifier {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeDirectory) UsernameExists(username string) (bool, error) {
	for _, u := range d.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (d *fakeDirectory) Create(user *model.User) error {
	d.users = append(d.users, user)
	return nil
}

type recordingSender struct {
	emails []string
	sms    []string
	code   string
}

func (s *recordingSender) SendEmail(to, code string) error {
	s.emails = append(s.emails, to)
	s.code = code
	return nil
}

func (s *recordingSender) SendSMS(to, code string) error {
	s.sms = append(s.sms, to)
	s.code = code
	return nil
}

func newSignupService() (*SignupService, *fakeDirectory, *recordingSender) {
	dir := &fakeDirectory{}
	sender := &recordingSender{}
	return NewSignupService(dir, sender, "91234567"), dir, sender
}

func TestClassifyIdentifier(t *testing.T) {
	assert.Equal(t, IdentifierPhone, ClassifyIdentifier("98765432"))
	assert.Equal(t, IdentifierEmail, ClassifyIdentifier("a@b.com"))
	assert.Equal(t, IdentifierUsername, ClassifyIdentifier("emma_parent"))
	// 7位和9位数字都不算本地手机号
	assert.Equal(t, IdentifierUsername, ClassifyIdentifier("1234567"))
	assert.Equal(t, IdentifierUsername, ClassifyIdentifier("123456789"))
	// 没有域名后缀的不算邮箱
	assert.Equal(t, IdentifierUsername, ClassifyIdentifier("a@b"))
}

func TestSignupParentHappyPath(t *testing.T) {
	svc, dir, sender := newSignupService()

	flow := svc.Start()
	assert.Equal(t, StepInput, flow.Step)

	flow, err := svc.SubmitIdentifier(flow.ID, "parent@new.com")
	require.NoError(t, err)
	assert.Equal(t, StepVerification, flow.Step)
	assert.Equal(t, []string{"parent@new.com"}, sender.emails)

	flow, err = svc.SubmitVerification(flow.ID, sender.code)
	require.NoError(t, err)
	assert.Equal(t, StepRole, flow.Step)

	flow, err = svc.ChooseRole(flow.ID, model.Parent)
	require.NoError(t, err)
	assert.Equal(t, StepParentDetails, flow.Step)

	user, err := svc.SubmitParentDetails(flow.ID, ParentDetails{
		Name:         "Emma Chen",
		GuardianName: "Mrs. Chen",
		School:       "REACH K3",
		Username:     "emma_new",
		Password:     "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Parent, user.Role)
	assert.Equal(t, "parent@new.com", user.Email)
	assert.True(t, user.Verified)
	require.Len(t, dir.users, 1)

	// 密码落库是散列，不是明文
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestSignupPhoneIdentifierDeliversSMS(t *testing.T) {
	svc, _, sender := newSignupService()

	flow := svc.Start()
	_, err := svc.SubmitIdentifier(flow.ID, "98765432")
	require.NoError(t, err)
	assert.Equal(t, []string{"98765432"}, sender.sms)
}

func TestSignupUsernameIdentifierGoesToAdminPhone(t *testing.T) {
	svc, _, sender := newSignupService()

	flow := svc.Start()
	_, err := svc.SubmitIdentifier(flow.ID, "brand_new_user")
	require.NoError(t, err)
	assert.Equal(t, []string{"91234567"}, sender.sms)
}

func TestSignupExistingUserBranch(t *testing.T) {
	svc, dir, _ := newSignupService()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	dir.users = append(dir.users, &model.User{Username: "emma_parent", Password: string(hashed), Role: model.Parent})

	flow := svc.Start()
	flow, err := svc.SubmitIdentifier(flow.ID, "emma_parent")
	require.NoError(t, err)
	assert.Equal(t, StepPassword, flow.Step)

	_, err = svc.SubmitPassword(flow.ID, "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	user, err := svc.SubmitPassword(flow.ID, "password123")
	require.NoError(t, err)
	assert.Equal(t, "emma_parent", user.Username)
	assert.Equal(t, StepComplete, flow.Step)
}

func TestSignupWrongCodeStaysOnVerification(t *testing.T) {
	svc, _, sender := newSignupService()

	flow := svc.Start()
	flow, err := svc.SubmitIdentifier(flow.ID, "a@b.com")
	require.NoError(t, err)

	flow, err = svc.SubmitVerification(flow.ID, "not-the-code")
	assert.ErrorIs(t, err, util.ErrVerificationFailed)
	assert.Equal(t, StepVerification, flow.Step)

	// 重交正确的码可以继续
	flow, err = svc.SubmitVerification(flow.ID, sender.code)
	require.NoError(t, err)
	assert.Equal(t, StepRole, flow.Step)
}

func TestSignupBackTargets(t *testing.T) {
	svc, _, sender := newSignupService()

	flow := svc.Start()

	// input 没有上一步
	_, err := svc.Back(flow.ID)
	assert.ErrorIs(t, err, util.ErrWrongWizardStep)

	flow, err = svc.SubmitIdentifier(flow.ID, "a@b.com")
	require.NoError(t, err)
	flow, err = svc.SubmitVerification(flow.ID, sender.code)
	require.NoError(t, err)
	flow, err = svc.ChooseRole(flow.ID, model.Volunteer)
	require.NoError(t, err)
	assert.Equal(t, StepVolunteerDetails, flow.Step)

	// details → role → verification
	flow, err = svc.Back(flow.ID)
	require.NoError(t, err)
	assert.Equal(t, StepRole, flow.Step)

	flow, err = svc.Back(flow.ID)
	require.NoError(t, err)
	assert.Equal(t, StepVerification, flow.Step)

	// verification → input，已填内容清空
	flow, err = svc.Back(flow.ID)
	require.NoError(t, err)
	assert.Equal(t, StepInput, flow.Step)
	assert.Empty(t, flow.Identifier)
}

func TestSignupRejectsWrongStepAndTakenUsername(t *testing.T) {
	svc, dir, sender := newSignupService()
	dir.users = append(dir.users, &model.User{Username: "taken"})

	flow := svc.Start()

	// input 状态不接受验证码
	_, err := svc.SubmitVerification(flow.ID, "x")
	assert.ErrorIs(t, err, util.ErrWrongWizardStep)

	flow, err = svc.SubmitIdentifier(flow.ID, "v@b.com")
	require.NoError(t, err)
	flow, err = svc.SubmitVerification(flow.ID, sender.code)
	require.NoError(t, err)
	_, err = svc.ChooseRole(flow.ID, model.Volunteer)
	require.NoError(t, err)

	_, err = svc.SubmitVolunteerDetails(flow.ID, VolunteerDetails{
		Name:     "Test User",
		Username: "taken",
		Password: "test123",
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestSignupUnknownFlow(t *testing.T) {
	svc, _, _ := newSignupService()
	_, err := svc.SubmitIdentifier("nope", "a@b.com")
	assert.ErrorIs(t, err, util.ErrWizardNotFound)
}
