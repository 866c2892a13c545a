package service

import (
	"sync"

	"reach_edu_backend/internal/model"
	"reach_edu_backend/internal/util"
)

// RefreshHub 跨视图一致性的近似实现：没有推送、没有订阅，
// 视图回到前台（Focus）时无条件重跑 Reader，覆盖自己的内存快照。
// 一直在后台的视图就一直看旧数据——单用户单设备顺序浏览下可接受，
// 按原行为保留，不升级成响应式模型。
//
// 同一视图内读写一致性不经过 hub：Writer 动作之后调用 ApplyLocal
// 立即更新本视图快照，其他视图要等各自下一次 Focus。
type RefreshHub struct {
	mu     sync.Mutex
	reader *AssignmentStateService
	views  map[string]*viewState
}

type viewState struct {
	assignmentIDs []string
	snapshots     map[string]model.AssignmentState
}

func NewRefreshHub(reader *AssignmentStateService) *RefreshHub {
	return &RefreshHub{
		reader: reader,
		views:  make(map[string]*viewState),
	}
}

// Mount 注册视图及其展示的作业集合，并做首次水合读
func (h *RefreshHub) Mount(viewID string, assignmentIDs []string) map[string]model.AssignmentState {
	h.mu.Lock()
	defer h.mu.Unlock()

	v := &viewState{
		assignmentIDs: append([]string(nil), assignmentIDs...),
		snapshots:     make(map[string]model.AssignmentState, len(assignmentIDs)),
	}
	h.views[viewID] = v
	h.reload(v)
	return copySnapshots(v)
}

// Focus 视图回到前台：同步重读全部作业状态，一次读完，无取消语义
func (h *RefreshHub) Focus(viewID string) (map[string]model.AssignmentState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.views[viewID]
	if !ok {
		return nil, util.ErrViewNotMounted
	}
	h.reload(v)
	return copySnapshots(v), nil
}

// Snapshot 返回视图当前（可能已过期的）快照，不触发任何读
func (h *RefreshHub) Snapshot(viewID string) (map[string]model.AssignmentState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.views[viewID]
	if !ok {
		return nil, util.ErrViewNotMounted
	}
	return copySnapshots(v), nil
}

// ApplyLocal 写操作之后让发起视图立即看到自己的写入
func (h *RefreshHub) ApplyLocal(viewID string, state model.AssignmentState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.views[viewID]
	if !ok {
		return
	}
	v.snapshots[state.AssignmentID] = state
}

// Unmount 视图销毁时注销
func (h *RefreshHub) Unmount(viewID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.views, viewID)
}

func (h *RefreshHub) reload(v *viewState) {
	for _, id := range v.assignmentIDs {
		v.snapshots[id] = h.reader.Load(id)
	}
}

func copySnapshots(v *viewState) map[string]model.AssignmentState {
	out := make(map[string]model.AssignmentState, len(v.snapshots))
	for id, s := range v.snapshots {
		out[id] = s
	}
	return out
}
