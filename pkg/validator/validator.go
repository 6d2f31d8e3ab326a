package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator 表单验证引擎
// 设计原则：
//   - 无状态：构造完成后不再修改内部状态，可在多个 goroutine 中并发使用
//   - 配置驱动：所有表单共用同一套规则，差异全部来自 FormSpec
//   - 纯函数：结果只取决于当前字段值快照
//
// 特性：
//   - 字段规则按固定顺序短路执行，每个字段恰好产生一个结果
//   - 整表提交检查给出第一个未通过的字段，用于聚焦
//   - Compile 在注册阶段检查配置错误（未知类型、悬空引用等）
type Validator struct {
	// validate 底层验证器实例（go-playground/validator），仅用于配置结构检查
	validate *validator.Validate
	// messages 面向用户的提示文案
	messages Messages
}

// Option 验证器选项
type Option func(*Validator)

// WithMessages 替换提示文案，未设置的项使用默认文案
func WithMessages(m Messages) Option {
	return func(v *Validator) {
		v.messages = m.withDefaults()
	}
}

var (
	// defaultValidator 默认验证器实例，全局单例
	defaultValidator *Validator
	// once 确保默认验证器只初始化一次
	once sync.Once
)

// Default 获取默认验证器实例（单例模式）
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// Validate 使用默认验证器验证表单
func Validate(form *FormSpec, values Values) Results {
	return Default().Validate(form, values)
}

// SubmitCheck 使用默认验证器执行提交检查
func SubmitCheck(form *FormSpec, values Values) SubmitResult {
	return Default().SubmitCheck(form, values)
}

// New 创建新的验证器实例
func New(opts ...Option) *Validator {
	v := validator.New()

	// 使用 json tag 作为字段名，配置错误中显示的路径与配置文件一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	e := &Validator{
		validate: v,
		messages: DefaultMessages(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate 验证表单全部字段
//
// 参数：
//
//	form: 表单规则
//	values: 当前字段值快照，缺失的字段按空字符串处理
//
// 返回：
//
//	每个字段恰好一个结果
func (v *Validator) Validate(form *FormSpec, values Values) Results {
	if form == nil {
		return Results{}
	}
	results := make(Results, len(form.Fields))
	for i := range form.Fields {
		field := &form.Fields[i]
		results[field.ID] = v.validateField(form, field, values)
	}
	return results
}

// ValidateField 验证单个字段（失焦时使用）
// 未知字段视为通过，与页面上不存在对应输入框时的行为一致
func (v *Validator) ValidateField(form *FormSpec, id string, values Values) ValidationResult {
	field, ok := form.Field(id)
	if !ok {
		return ValidationResult{Valid: true}
	}
	return v.validateField(form, field, values)
}

// SubmitCheck 提交前检查整张表单
// 按声明顺序验证所有字段（不会在第一个错误处停止，以便展示全部错误）
func (v *Validator) SubmitCheck(form *FormSpec, values Values) SubmitResult {
	res := SubmitResult{AllValid: true, Results: v.Validate(form, values)}
	if form == nil {
		return res
	}
	for _, field := range form.Fields {
		if res.Results[field.ID].Valid {
			continue
		}
		res.AllValid = false
		res.FirstInvalidField = field.ID
		break
	}
	return res
}

// validateField 规则执行顺序：
//  1. 必填检查（空值或仅空白）；非必填的空值直接通过
//  2. email / password / 确认密码 / 长度 / 选项 / 互斥字段，第一条失败的规则生效
func (v *Validator) validateField(form *FormSpec, field *FieldSpec, values Values) ValidationResult {
	value := normalize(values[field.ID])
	if value == "" {
		if field.Required {
			return ValidationResult{Message: v.messages.Required}
		}
		return ValidationResult{Valid: true}
	}

	for _, r := range fieldRules {
		if msg := r(v, form, field, value, values); msg != "" {
			return ValidationResult{Message: msg}
		}
	}
	return ValidationResult{Valid: true}
}

// Compile 检查表单配置
// 结构检查交给底层验证器，跨字段引用在此处检查
// 返回 *ConfigError（可用 errors.Is(err, ErrInvalidSpec) 判断），nil 表示配置有效
func (v *Validator) Compile(form *FormSpec) error {
	if form == nil {
		return &ConfigError{Issues: []*FieldIssue{{Tag: "required"}}}
	}

	ce := &ConfigError{Form: form.Name}
	if err := v.validate.Struct(form); err != nil {
		ce.addValidatorErrors(err)
	}

	seen := make(map[string]bool, len(form.Fields))
	for i := range form.Fields {
		field := &form.Fields[i]
		if field.ID == "" {
			continue
		}
		if seen[field.ID] {
			ce.add(field.ID, "", "duplicate", "")
		}
		seen[field.ID] = true

		if field.MaxLength > 0 && field.MaxLength < field.MinLength {
			ce.add(field.ID, "", "max_length", "less than min_length")
		}
		if field.Match != "" {
			ref, ok := form.Field(field.Match)
			switch {
			case !ok:
				ce.add(field.ID, "", "unknown_ref", field.Match)
			case ref.Kind != KindPassword:
				ce.add(field.ID, "", "match_kind", string(ref.Kind))
			}
		}
		if field.DiffersFrom != "" {
			if field.DiffersFrom == field.ID {
				ce.add(field.ID, "", "self_ref", field.DiffersFrom)
			} else if _, ok := form.Field(field.DiffersFrom); !ok {
				ce.add(field.ID, "", "unknown_ref", field.DiffersFrom)
			}
		}
	}

	if ce.hasIssues() {
		return ce
	}
	return nil
}

// GetUnderlyingValidator 获取底层的 go-playground/validator 实例
// 用于注册自定义配置检查规则
func (v *Validator) GetUnderlyingValidator() *validator.Validate {
	return v.validate
}
