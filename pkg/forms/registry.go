package forms

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"go.uber.org/zap"

	"skillswap-forms/pkg/validator"
)

// maxNameLength 表单名称的最大长度
const maxNameLength = 64

// nameFormatRegex 表单名称的合法字符：小写字母、数字、下划线、连字符
var nameFormatRegex = regexp.MustCompile(`^[a-z0-9_\-]+$`)

// Registry 表单注册表
// 注册时执行配置检查并保存副本，Get 同样返回副本，调用方的修改不会影响已注册的表单
type Registry struct {
	engine *validator.Validator
	logger *zap.Logger
	forms  map[string]*validator.FormSpec
	mu     sync.RWMutex
}

// RegistryOption 注册表选项
type RegistryOption func(*Registry)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEngine 设置用于配置检查的验证器
func WithEngine(engine *validator.Validator) RegistryOption {
	return func(r *Registry) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// NewRegistry 创建空注册表
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		engine: validator.Default(),
		logger: zap.NewNop(),
		forms:  make(map[string]*validator.FormSpec),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry 创建包含全部内置表单的注册表
func NewDefaultRegistry(opts ...RegistryOption) (*Registry, error) {
	r := NewRegistry(opts...)
	for _, form := range Builtin() {
		if err := r.Register(form); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry 同 NewDefaultRegistry，配置错误时 panic（仅用于程序启动阶段）
func MustRegistry(opts ...RegistryOption) *Registry {
	r, err := NewDefaultRegistry(opts...)
	if err != nil {
		panic("forms: " + err.Error())
	}
	return r
}

// Register 检查并注册表单，名称已存在时返回 ErrFormAlreadyExists
func (r *Registry) Register(form *validator.FormSpec) error {
	return r.put(form, false)
}

// Replace 检查并注册表单，名称已存在时覆盖（用于配置文件覆盖内置表单）
func (r *Registry) Replace(form *validator.FormSpec) error {
	return r.put(form, true)
}

func (r *Registry) put(form *validator.FormSpec, overwrite bool) error {
	if form == nil {
		return ErrNilForm
	}
	form = form.Clone()
	if err := validateName(form.Name); err != nil {
		return err
	}
	if err := r.engine.Compile(form); err != nil {
		return fmt.Errorf("register form '%s': %w", form.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.forms[form.Name]
	if exists && !overwrite {
		return fmt.Errorf("%w: '%s'", ErrFormAlreadyExists, form.Name)
	}
	r.forms[form.Name] = form

	r.logger.Debug("表单已注册",
		zap.String("form", form.Name),
		zap.Int("fields", len(form.Fields)),
		zap.Bool("replaced", exists))
	return nil
}

// Get 获取已注册的表单
func (r *Registry) Get(name string) (*validator.FormSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrFormNotFound, name)
	}
	return form.Clone(), nil
}

// Names 按字母顺序返回全部表单名称
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.forms))
	for name := range r.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Engine 返回注册表使用的验证器
func (r *Registry) Engine() *validator.Validator {
	return r.engine
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength || !nameFormatRegex.MatchString(name) {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}
