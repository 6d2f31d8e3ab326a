package formctl

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"skillswap-forms/pkg/config"
	"skillswap-forms/pkg/logger"
	"skillswap-forms/pkg/validator"
)

// DefaultLoadingTimeout 提交后加载状态的默认持续时间
const DefaultLoadingTimeout = 3 * time.Second

// Controller 表单控制器，将页面事件转换为对验证引擎的同步调用，并把结果交给展示层
//
// 事件处理：
//   - OnInput：更新浮动标签；值非空时清除错误；主字段变化时重新验证已填写的依赖字段
//   - OnFocus / OnBlur：浮动标签；失焦时验证字段
//   - OnSubmit：整表检查，失败则聚焦第一个错误字段，成功则进入加载状态
type Controller struct {
	engine    *validator.Validator
	form      *validator.FormSpec
	input     InputSource
	presenter Presenter
	logger    *zap.Logger

	loadingTimeout time.Duration
	redirectDelay  time.Duration
	redirectNotice string

	// dependents 主字段 ID -> 引用它的字段 ID（确认密码、互斥字段）
	dependents map[string][]string

	loading  Timer
	redirect Timer
}

// Option 控制器选项
type Option func(*Controller)

// WithLogger 设置日志器
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.OrNop(l)
	}
}

// WithLoadingTimeout 设置加载状态的自动清除时间，0 表示不自动清除
func WithLoadingTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.loadingTimeout = d
	}
}

// WithRedirectNotice 提交成功 d 之后显示跳转提示
func WithRedirectNotice(d time.Duration, message string) Option {
	return func(c *Controller) {
		c.redirectDelay = d
		c.redirectNotice = message
	}
}

// WithSubmitConfig 从应用配置读取提交流程参数
func WithSubmitConfig(cfg config.SubmitConfig) Option {
	return func(c *Controller) {
		c.loadingTimeout = cfg.LoadingTimeout
		c.redirectDelay = cfg.RedirectDelay
		c.redirectNotice = cfg.RedirectNotice
	}
}

// New 创建控制器
func New(engine *validator.Validator, form *validator.FormSpec, input InputSource, presenter Presenter, opts ...Option) *Controller {
	if engine == nil {
		engine = validator.Default()
	}
	c := &Controller{
		engine:         engine,
		form:           form,
		input:          input,
		presenter:      presenter,
		logger:         zap.NewNop(),
		loadingTimeout: DefaultLoadingTimeout,
		dependents:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, field := range form.Fields {
		if field.Match != "" {
			c.dependents[field.Match] = append(c.dependents[field.Match], field.ID)
		}
		if field.DiffersFrom != "" {
			c.dependents[field.DiffersFrom] = append(c.dependents[field.DiffersFrom], field.ID)
		}
	}
	return c
}

// Init 根据初始值设置浮动标签状态（如浏览器自动填充）
func (c *Controller) Init() {
	for _, id := range c.form.FieldIDs() {
		if c.filled(id) {
			c.presenter.SetFilled(id, true)
		}
	}
}

// OnInput 字段值变化
func (c *Controller) OnInput(fieldID string) {
	filled := c.filled(fieldID)
	c.presenter.SetFilled(fieldID, filled)
	if filled {
		c.presenter.ClearError(fieldID)
	}

	for _, dep := range c.dependents[fieldID] {
		if c.filled(dep) {
			c.render(dep, c.engine.ValidateField(c.form, dep, c.snapshot()))
		}
	}
}

// OnFocus 字段获得焦点
func (c *Controller) OnFocus(fieldID string) {
	c.presenter.SetFilled(fieldID, true)
}

// OnBlur 字段失去焦点，验证并展示结果，返回字段是否通过
func (c *Controller) OnBlur(fieldID string) bool {
	if !c.filled(fieldID) {
		c.presenter.SetFilled(fieldID, false)
	}
	res := c.engine.ValidateField(c.form, fieldID, c.snapshot())
	c.render(fieldID, res)
	return res.Valid
}

// OnSubmit 提交尝试，返回 false 表示应阻止提交
func (c *Controller) OnSubmit() bool {
	res := c.engine.SubmitCheck(c.form, c.snapshot())
	for _, id := range c.form.FieldIDs() {
		c.render(id, res.Results[id])
	}

	if first, ok := res.FirstInvalid(); ok {
		c.presenter.Focus(first)
		c.logger.Debug("提交被阻止",
			zap.String("form", c.form.Name),
			zap.String("first_invalid", first))
		return false
	}

	c.presenter.SetLoading(true)
	c.loading.Schedule(c.loadingTimeout, func() {
		c.presenter.SetLoading(false)
	})
	if c.redirectDelay > 0 && c.redirectNotice != "" {
		c.redirect.Schedule(c.redirectDelay, func() {
			c.presenter.ShowNotice(c.redirectNotice)
		})
	}
	c.logger.Debug("提交通过", zap.String("form", c.form.Name))
	return true
}

// Close 取消尚未触发的计时任务（页面卸载时调用）
func (c *Controller) Close() {
	c.loading.Cancel()
	c.redirect.Cancel()
}

func (c *Controller) render(fieldID string, res validator.ValidationResult) {
	if res.Valid {
		c.presenter.ClearError(fieldID)
		return
	}
	c.presenter.ShowError(fieldID, res.Message)
}

// snapshot 每次验证都读取一份新的字段值快照
func (c *Controller) snapshot() validator.Values {
	values := make(validator.Values, len(c.form.Fields))
	for _, field := range c.form.Fields {
		values[field.ID] = c.input.Value(field.ID)
	}
	return values
}

func (c *Controller) filled(fieldID string) bool {
	return strings.TrimSpace(c.input.Value(fieldID)) != ""
}
