package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/store"
	"reach_edu_backend/internal/util"
	"reach_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// interestKeywords 动作按钮文案里出现这些词（任一语言）就按
// "感兴趣/提醒我"类作业处理，报名开关只对这类作业有意义
var interestKeywords = []string{"interest", "remind", "register", "感興趣", "感兴趣", "提醒", "報名", "报名"}

// subjectZh 自建作业镜像到中文版时的科目对照
var subjectZh = map[string]string{
	"Alphabet":           "字母",
	"Sight Words":        "常見詞",
	"Vocabulary":         "詞彙",
	"Phonemic Awareness": "語音意識",
	"Point-and-Read":     "指讀",
}

// AssignmentService 作业目录：内置目录 + 管理员自建作业，按语言各存一份。
// 自建作业同时派生 weekly task 条目，两边都是整块 JSON 记录。
type AssignmentService struct {
	Store store.Store
	State *AssignmentStateService
}

func NewAssignmentService(s store.Store, state *AssignmentStateService) *AssignmentService {
	return &AssignmentService{Store: s, State: state}
}

// IsInterestAssignment 对已解析的按钮文案做子串判断，不懂语言只认关键词
func IsInterestAssignment(buttonText string) bool {
	lower := strings.ToLower(buttonText)
	for _, kw := range interestKeywords {
		if strings.Contains(lower, kw) || strings.Contains(buttonText, kw) {
			return true
		}
	}
	return false
}

// DisplayTitle 感兴趣类作业报名后标题追加 "(registered)" 标记
func DisplayTitle(a model.Assignment, registered bool) string {
	if registered && IsInterestAssignment(a.ButtonText) {
		return a.Title + " (registered)"
	}
	return a.Title
}

// List 返回某语言的全部作业：内置目录在前，自建追加在后。
// 每条作业的标题都按当前报名状态渲染。
func (s *AssignmentService) List(lang string) []model.Assignment {
	assignments := append([]model.Assignment{}, builtinCatalog(lang)...)
	assignments = append(assignments, s.customAssignments(lang)...)

	for i := range assignments {
		state := s.State.Load(strconv.Itoa(assignments[i].ID))
		assignments[i].Title = DisplayTitle(assignments[i], state.Registered)
	}
	return assignments
}

// Get 单个作业，找不到返回 ErrAssignmentNotFound
func (s *AssignmentService) Get(lang string, id int) (*model.Assignment, error) {
	for _, a := range s.List(lang) {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, util.ErrAssignmentNotFound
}

// WeeklyTasks 自建作业派生的每周任务条目
func (s *AssignmentService) WeeklyTasks(lang string) []model.WeeklyTask {
	tasks := []model.WeeklyTask{}
	raw, ok := s.Store.Read(store.CustomWeeklyTasksKey(lang))
	if !ok {
		return tasks
	}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		logger.Log.Warn("malformed weekly task record, treating as absent",
			zap.String("lang", lang), zap.Error(err))
		return []model.WeeklyTask{}
	}
	return tasks
}

// CreateCustomRequest 管理端新建作业表单
type CreateCustomRequest struct {
	Title         string           `json:"title" binding:"required"`
	Subtitle      string           `json:"subtitle" binding:"required"`
	Description   string           `json:"description" binding:"required"`
	Subject       string           `json:"subject" binding:"required"`
	DueDate       string           `json:"dueDate" binding:"required"` // YYYYMMDD
	EstimatedTime string           `json:"estimatedTime"`
	Difficulty    model.Difficulty `json:"difficulty"`
	Objectives    []string         `json:"objectives"`
	Materials     []string         `json:"materials"`
	Instructions  []string         `json:"instructions"`
	ButtonText    string           `json:"buttonText"`
	PointReward   int              `json:"pointReward"`
	IconName      string           `json:"iconName"`
}

// CreateCustom 写入英文版 + 派生中文镜像，并各追加一条每周任务。
// 四次写分别覆盖四个键，没有跨键事务。
func (s *AssignmentService) CreateCustom(req CreateCustomRequest) (*model.Assignment, error) {
	if req.Title == "" || req.Subtitle == "" || req.Description == "" || req.Subject == "" || req.DueDate == "" {
		return nil, util.ErrRequiredFields
	}
	if !ValidDueDate(req.DueDate) {
		return nil, util.ErrInvalidDateFormat
	}

	en := s.customAssignments("en")
	zh := s.customAssignments("zh")

	// 自建作业 ID 从 1000 起，避开内置目录
	newID := 1000
	for _, a := range en {
		if a.ID > newID {
			newID = a.ID
		}
	}
	for _, a := range zh {
		if a.ID > newID {
			newID = a.ID
		}
	}
	newID++

	assignmentEn := model.Assignment{
		ID:            newID,
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		Description:   req.Description,
		Subject:       req.Subject,
		DueDate:       FormatDueDate(req.DueDate),
		EstimatedTime: req.EstimatedTime,
		Difficulty:    req.Difficulty,
		Objectives:    dropEmpty(req.Objectives),
		Materials:     dropEmpty(req.Materials),
		Instructions:  dropEmpty(req.Instructions),
		ButtonText:    req.ButtonText,
		PointReward:   req.PointReward,
		IconName:      req.IconName,
	}

	assignmentZh := assignmentEn
	assignmentZh.Title = req.Title + " (中文版)"
	assignmentZh.Subtitle = req.Subtitle + " (中文版)"
	assignmentZh.Description = req.Description + " (中文版)"
	if mapped, ok := subjectZh[req.Subject]; ok {
		assignmentZh.Subject = mapped
	}

	s.appendCustomAssignment("en", assignmentEn)
	s.appendCustomAssignment("zh", assignmentZh)

	s.appendWeeklyTask("en", model.WeeklyTask{
		ID:          newID,
		Title:       assignmentEn.Title,
		Subtitle:    assignmentEn.Subtitle,
		IconName:    assignmentEn.IconName,
		Subject:     assignmentEn.Subject,
		PointReward: assignmentEn.PointReward,
	})
	s.appendWeeklyTask("zh", model.WeeklyTask{
		ID:          newID,
		Title:       assignmentZh.Title,
		Subtitle:    assignmentZh.Subtitle,
		IconName:    assignmentZh.IconName,
		Subject:     assignmentZh.Subject,
		PointReward: assignmentZh.PointReward,
	})

	return &assignmentEn, nil
}

// ClearData 管理端"清除数据"控件的入口
func (s *AssignmentService) ClearData(assignmentID string) {
	s.State.ClearAssignment(assignmentID)
}

// ValidDueDate 校验 YYYYMMDD：年份 2020–2030，且必须是真实日历日
func ValidDueDate(dateStr string) bool {
	if len(dateStr) != 8 {
		return false
	}
	for _, r := range dateStr {
		if r < '0' || r > '9' {
			return false
		}
	}
	year, _ := strconv.Atoi(dateStr[:4])
	month, _ := strconv.Atoi(dateStr[4:6])
	day, _ := strconv.Atoi(dateStr[6:8])

	if year < 2020 || year > 2030 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && int(date.Month()) == month && date.Day() == day
}

// FormatDueDate YYYYMMDD → 展示格式 D/M/YYYY 23:00（日和月不补零）
func FormatDueDate(dateStr string) string {
	if len(dateStr) != 8 {
		return ""
	}
	year := dateStr[:4]
	month, _ := strconv.Atoi(dateStr[4:6])
	day, _ := strconv.Atoi(dateStr[6:8])
	return fmt.Sprintf("%d/%d/%s 23:00", day, month, year)
}

func (s *AssignmentService) customAssignments(lang string) []model.Assignment {
	assignments := []model.Assignment{}
	raw, ok := s.Store.Read(store.CustomAssignmentsKey(lang))
	if !ok {
		return assignments
	}
	if err := json.Unmarshal([]byte(raw), &assignments); err != nil {
		logger.Log.Warn("malformed custom assignment record, treating as absent",
			zap.String("lang", lang), zap.Error(err))
		return []model.Assignment{}
	}
	return assignments
}

func (s *AssignmentService) appendCustomAssignment(lang string, a model.Assignment) {
	list := append(s.customAssignments(lang), a)
	raw, err := json.Marshal(list)
	if err != nil {
		logger.Log.Error("failed to encode custom assignments, write dropped", zap.Error(err))
		return
	}
	if err := s.Store.Write(store.CustomAssignmentsKey(lang), string(raw)); err != nil {
		logger.Log.Warn("record store write dropped",
			zap.String("key", store.CustomAssignmentsKey(lang)), zap.Error(err))
	}
}

func (s *AssignmentService) appendWeeklyTask(lang string, t model.WeeklyTask) {
	list := append(s.WeeklyTasks(lang), t)
	raw, err := json.Marshal(list)
	if err != nil {
		logger.Log.Error("failed to encode weekly tasks, write dropped", zap.Error(err))
		return
	}
	if err := s.Store.Write(store.CustomWeeklyTasksKey(lang), string(raw)); err != nil {
		logger.Log.Warn("record store write dropped",
			zap.String("key", store.CustomWeeklyTasksKey(lang)), zap.Error(err))
	}
}

func dropEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// builtinCatalog 内置作业目录，演示数据，对应移动端首页的固定内容
func builtinCatalog(lang string) []model.Assignment {
	if lang == "zh" {
		return []model.Assignment{
			{
				ID:            1,
				Title:         "英文閱讀理解",
				Subtitle:      "閱讀短文並回答問題",
				Description:   "和孩子一起完成閱讀練習，拍照上傳完成的作業。",
				Subject:       "常見詞",
				DueDate:       "23/8/2025 23:00",
				EstimatedTime: "20 分鐘",
				Difficulty:    model.DifficultyEasy,
				ButtonText:    "提交作業",
				PointReward:   20,
				IconName:      "Camera",
			},
			{
				ID:            2,
				Title:         "字母描寫練習",
				Subtitle:      "A–Z 描寫",
				Description:   "完成字母描寫工作紙。",
				Subject:       "字母",
				DueDate:       "25/8/2025 23:00",
				EstimatedTime: "15 分鐘",
				Difficulty:    model.DifficultyEasy,
				ButtonText:    "提交作業",
				PointReward:   10,
				IconName:      "BookOpen",
			},
			{
				ID:            3,
				Title:         "線上輔導：拼音基礎",
				Subtitle:      "義工導師即時授課",
				Description:   "報名參加本週的線上拼音輔導。",
				Subject:       "語音意識",
				DueDate:       "29/8/2025 23:00",
				EstimatedTime: "30 分鐘",
				Difficulty:    model.DifficultyMedium,
				ButtonText:    "我感興趣，提醒我",
				PointReward:   15,
				IconName:      "Users",
			},
		}
	}
	return []model.Assignment{
		{
			ID:            1,
			Title:         "English Reading Comprehension",
			Subtitle:      "Read the passage and answer questions",
			Description:   "Work through the reading exercise together and upload photos of the completed worksheet.",
			Subject:       "Sight Words",
			DueDate:       "23/8/2025 23:00",
			EstimatedTime: "20 min",
			Difficulty:    model.DifficultyEasy,
			ButtonText:    "Submit Assignment",
			PointReward:   20,
			IconName:      "Camera",
		},
		{
			ID:            2,
			Title:         "Alphabet Tracing Practice",
			Subtitle:      "Trace A–Z",
			Description:   "Complete the alphabet tracing worksheet.",
			Subject:       "Alphabet",
			DueDate:       "25/8/2025 23:00",
			EstimatedTime: "15 min",
			Difficulty:    model.DifficultyEasy,
			ButtonText:    "Submit Assignment",
			PointReward:   10,
			IconName:      "BookOpen",
		},
		{
			ID:            3,
			Title:         "Live Tutoring: Phonics Basics",
			Subtitle:      "Volunteer-led live session",
			Description:   "Sign up for this week's live phonics tutoring session.",
			Subject:       "Phonemic Awareness",
			DueDate:       "29/8/2025 23:00",
			EstimatedTime: "30 min",
			Difficulty:    model.DifficultyMedium,
			ButtonText:    "I'm interested, remind me",
			PointReward:   15,
			IconName:      "Users",
		},
	}
}
