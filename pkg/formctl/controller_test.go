package formctl

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap-forms/pkg/config"
	"skillswap-forms/pkg/forms"
	"skillswap-forms/pkg/validator"
)

// recorder 记录展示层调用的测试替身
type recorder struct {
	mu      sync.Mutex
	errors  map[string]string
	filled  map[string]bool
	focus   []string
	loading []bool
	notices []string
}

func newRecorder() *recorder {
	return &recorder{errors: map[string]string{}, filled: map[string]bool{}}
}

func (r *recorder) ShowError(id, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[id] = msg
}

func (r *recorder) ClearError(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.errors, id)
}

func (r *recorder) Focus(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus = append(r.focus, id)
}

func (r *recorder) SetFilled(id string, filled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filled[id] = filled
}

func (r *recorder) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = append(r.loading, loading)
}

func (r *recorder) ShowNotice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

func (r *recorder) errorOf(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.errors[id]
	return msg, ok
}

func (r *recorder) loadingStates() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.loading...)
}

func (r *recorder) noticeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func newRegistration(values validator.Values, opts ...Option) (*Controller, *recorder) {
	rec := newRecorder()
	c := New(validator.New(), forms.RegistrationForm(), values, rec, opts...)
	return c, rec
}

func TestController_SubmitBlocked(t *testing.T) {
	values := validator.Values{"email": "user@example.com", "full_name": "", "password1": "short", "password2": ""}
	c, rec := newRegistration(values)

	assert.False(t, c.OnSubmit())
	assert.Equal(t, []string{"full_name"}, rec.focus)

	_, hasEmailErr := rec.errorOf("email")
	assert.False(t, hasEmailErr)
	msg, _ := rec.errorOf("full_name")
	assert.Equal(t, "Это поле обязательно для заполнения", msg)
	msg, _ = rec.errorOf("password1")
	assert.Equal(t, "Пароль должен содержать минимум 8 символов", msg)
	assert.Empty(t, rec.loadingStates())
}

func TestController_SubmitValid(t *testing.T) {
	values := validator.Values{
		"email": "user@example.com", "full_name": "Анна",
		"password1": "secret123", "password2": "secret123",
	}
	c, rec := newRegistration(values,
		WithLoadingTimeout(20*time.Millisecond),
		WithRedirectNotice(10*time.Millisecond, "Перенаправление..."))
	defer c.Close()

	assert.True(t, c.OnSubmit())
	assert.Empty(t, rec.focus)

	assert.Eventually(t, func() bool {
		states := rec.loadingStates()
		return len(states) == 2 && states[0] && !states[1]
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return rec.noticeCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestController_CloseCancelsTimers(t *testing.T) {
	values := validator.Values{"email": "a@b.co", "password": "x"}
	rec := newRecorder()
	c := New(nil, forms.LoginForm(), values, rec,
		WithSubmitConfig(config.SubmitConfig{
			LoadingTimeout: 30 * time.Millisecond,
			RedirectDelay:  30 * time.Millisecond,
			RedirectNotice: "Перенаправление...",
		}))

	require.True(t, c.OnSubmit())
	c.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []bool{true}, rec.loadingStates())
	assert.Zero(t, rec.noticeCount())
}

func TestController_BlurAndInput(t *testing.T) {
	values := validator.Values{"email": "bad"}
	c, rec := newRegistration(values)

	c.OnFocus("email")
	assert.True(t, rec.filled["email"])

	assert.False(t, c.OnBlur("email"))
	msg, _ := rec.errorOf("email")
	assert.Equal(t, "Введите корректный email адрес", msg)

	// 输入非空值时清除错误（不重新验证）
	values["email"] = "still-bad"
	c.OnInput("email")
	_, ok := rec.errorOf("email")
	assert.False(t, ok)

	// 清空后失焦：浮动标签复位，显示必填错误
	values["email"] = "  "
	c.OnInput("email")
	assert.False(t, rec.filled["email"])
	assert.False(t, c.OnBlur("email"))
	msg, _ = rec.errorOf("email")
	assert.Equal(t, "Это поле обязательно для заполнения", msg)
}

func TestController_PrimaryPasswordRevalidatesConfirmation(t *testing.T) {
	values := validator.Values{"password1": "secret123", "password2": "secret123"}
	c, rec := newRegistration(values)

	values["password1"] = "secret1234"
	c.OnInput("password1")
	msg, ok := rec.errorOf("password2")
	require.True(t, ok)
	assert.Equal(t, "Пароли не совпадают", msg)

	values["password1"] = "secret123"
	c.OnInput("password1")
	_, ok = rec.errorOf("password2")
	assert.False(t, ok)

	// 确认密码为空时不验证
	values["password2"] = ""
	values["password1"] = "other-secret"
	c.OnInput("password1")
	_, ok = rec.errorOf("password2")
	assert.False(t, ok)
}

func TestController_Init(t *testing.T) {
	rec := newRecorder()
	c := New(validator.New(), forms.ProposalCreateForm(), InputFunc(func(id string) string {
		if id == "format" {
			return "онлайн"
		}
		return ""
	}), rec)

	c.Init()
	assert.Equal(t, map[string]bool{"format": true}, rec.filled)
}

func TestTimer(t *testing.T) {
	var tm Timer
	fired := make(chan int, 2)

	tm.Schedule(20*time.Millisecond, func() { fired <- 1 })
	assert.True(t, tm.Pending())
	// 重新调度替换旧任务
	tm.Schedule(10*time.Millisecond, func() { fired <- 2 })

	select {
	case v := <-fired:
		assert.Equal(t, 2, v)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, fired, 0)
	assert.False(t, tm.Pending())
	assert.False(t, tm.Cancel())

	tm.Schedule(10*time.Millisecond, func() { fired <- 3 })
	assert.True(t, tm.Cancel())
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, fired, 0)

	// 非正延迟不调度
	tm.Schedule(0, func() { fired <- 4 })
	assert.False(t, tm.Pending())
}
