package validator

// FieldKind 字段类型，决定字段在必填检查之后适用哪一类规则
type FieldKind string

const (
	KindText                 FieldKind = "text"                  // 普通文本
	KindEmail                FieldKind = "email"                 // 邮箱
	KindPassword             FieldKind = "password"              // 主密码
	KindPasswordConfirmation FieldKind = "password_confirmation" // 确认密码，需引用主密码字段
	KindSelect               FieldKind = "select"                // 从枚举选项中选择
)

// Valid 判断是否为已知的字段类型
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindPassword, KindPasswordConfirmation, KindSelect:
		return true
	}
	return false
}

// FieldSpec 单个表单字段的静态验证规则
// 设计目标：
//   - 纯配置：只描述规则，不持有任何运行时状态
//   - 跨字段引用：通过 Match / DiffersFrom 引用同一表单中其他字段的 ID
//
// 示例：
//
//	FieldSpec{ID: "password2", Kind: KindPasswordConfirmation, Required: true, Match: "password1"}
type FieldSpec struct {
	// ID 字段标识，与表单字段 name 一致
	ID string `json:"id" yaml:"id" validate:"required,max=64"`
	// Label 字段显示名称（仅用于展示）
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Kind 字段类型
	Kind FieldKind `json:"kind" yaml:"kind" validate:"required,oneof=text email password password_confirmation select"`
	// Required 是否必填
	Required bool `json:"required" yaml:"required"`
	// MinLength 最小长度（按字符计），0 表示不限制
	// 对 password 类型为空时回退到 FormSpec.PasswordMinLength
	MinLength int `json:"min_length,omitempty" yaml:"min_length,omitempty" validate:"gte=0"`
	// MaxLength 最大长度（按字符计），0 表示不限制
	MaxLength int `json:"max_length,omitempty" yaml:"max_length,omitempty" validate:"gte=0"`
	// MinLengthMessage 长度不足时的专用提示（可选），为空时使用通用提示
	MinLengthMessage string `json:"min_length_message,omitempty" yaml:"min_length_message,omitempty"`
	// Match 确认密码所引用的主密码字段 ID
	Match string `json:"match,omitempty" yaml:"match,omitempty" validate:"required_if=Kind password_confirmation"`
	// DiffersFrom 值必须与之不同的字段 ID（如：提供的技能不能等于想要的技能）
	DiffersFrom string `json:"differs_from,omitempty" yaml:"differs_from,omitempty"`
	// Options select 类型的可选值，为空时不限制
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// FormSpec 表单规则，字段顺序即提交失败时的聚焦优先级
type FormSpec struct {
	// Name 表单标识（如 login、registration）
	Name string `json:"name" yaml:"name" validate:"required,max=64"`
	// Title 表单标题（仅用于展示）
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// PasswordMinLength password 字段的默认最小长度
	PasswordMinLength int `json:"password_min_length,omitempty" yaml:"password_min_length,omitempty" validate:"gte=0"`
	// Fields 有序字段列表
	Fields []FieldSpec `json:"fields" yaml:"fields" validate:"required,min=1,dive"`
}

// Field 按 ID 查找字段
func (f *FormSpec) Field(id string) (*FieldSpec, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// Clone 深拷贝表单，Fields 与 Options 不与原表单共享底层数组
func (f *FormSpec) Clone() *FormSpec {
	if f == nil {
		return nil
	}
	c := *f
	if f.Fields != nil {
		c.Fields = make([]FieldSpec, len(f.Fields))
		for i, field := range f.Fields {
			if field.Options != nil {
				field.Options = append([]string(nil), field.Options...)
			}
			c.Fields[i] = field
		}
	}
	return &c
}

// FieldIDs 按声明顺序返回全部字段 ID
func (f *FormSpec) FieldIDs() []string {
	ids := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		ids = append(ids, field.ID)
	}
	return ids
}

// Values 当前各字段的输入值快照，key 为字段 ID
// 缺失的 key 视为空字符串
type Values map[string]string

// Value 实现 formctl.InputSource 风格的读取
func (v Values) Value(id string) string {
	return v[id]
}

// ValidationResult 单个字段的验证结论，验证通过时 Message 为空
type ValidationResult struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message"`
}

// Results 一次验证的全部结果，key 为字段 ID
type Results map[string]ValidationResult

// SubmitResult 整表提交检查结果
type SubmitResult struct {
	// AllValid 全部字段是否通过
	AllValid bool `json:"all_valid"`
	// FirstInvalidField 按声明顺序第一个未通过的字段，全部通过时为空
	FirstInvalidField string `json:"first_invalid_field,omitempty"`
	// Results 各字段结果
	Results Results `json:"results"`
}

// FirstInvalid 返回第一个未通过的字段 ID，ok 为 false 表示不存在
func (r SubmitResult) FirstInvalid() (id string, ok bool) {
	return r.FirstInvalidField, r.FirstInvalidField != ""
}
