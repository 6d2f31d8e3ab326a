package formctl

import (
	"sync"
	"time"
)

// Timer 可取消的一次性延迟任务
// 重新调度会替换尚未触发的任务；取消后任务不会执行，也没有其他副作用
type Timer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Schedule 在 d 之后执行 fn，d <= 0 时不调度
func (t *Timer) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if d <= 0 || fn == nil {
		return
	}

	gen := t.gen
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		// 已被取消或替换
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.gen++
		t.mu.Unlock()

		fn()
	})
}

// Cancel 取消尚未触发的任务，返回是否确实取消了任务
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

// Pending 是否存在尚未触发的任务
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Timer) stopLocked() bool {
	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	t.gen++
	return true
}
