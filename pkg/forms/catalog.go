package forms

import "skillswap-forms/pkg/validator"

// 表单名称
const (
	Login          = "login"
	Registration   = "registration"
	SkillCreate    = "skill_create"
	ProposalCreate = "proposal_create"
)

// 技能等级与交换形式的可选值
var (
	SkillLevels     = []string{"новичок", "средний", "эксперт"}
	ProposalFormats = []string{"онлайн", "офлайн"}
)

// LoginForm 登录表单：邮箱 + 密码（任意非空密码）
func LoginForm() *validator.FormSpec {
	return &validator.FormSpec{
		Name:              Login,
		Title:             "Вход",
		PasswordMinLength: 1,
		Fields: []validator.FieldSpec{
			{ID: "email", Label: "Email", Kind: validator.KindEmail, Required: true},
			{ID: "password", Label: "Пароль", Kind: validator.KindPassword, Required: true},
		},
	}
}

// RegistrationForm 注册表单
func RegistrationForm() *validator.FormSpec {
	return &validator.FormSpec{
		Name:              Registration,
		Title:             "Регистрация",
		PasswordMinLength: 8,
		Fields: []validator.FieldSpec{
			{ID: "email", Label: "Email", Kind: validator.KindEmail, Required: true},
			{ID: "full_name", Label: "Полное имя", Kind: validator.KindText, Required: true, MaxLength: 255},
			{ID: "password1", Label: "Пароль", Kind: validator.KindPassword, Required: true},
			{
				ID: "password2", Label: "Подтверждение пароля", Kind: validator.KindPasswordConfirmation,
				Required: true, Match: "password1",
			},
		},
	}
}

// SkillCreateForm 创建技能表单，category 为分类 ID，可选值由页面动态提供
func SkillCreateForm() *validator.FormSpec {
	return &validator.FormSpec{
		Name:  SkillCreate,
		Title: "Новый навык",
		Fields: []validator.FieldSpec{
			{
				ID: "name", Label: "Название навыка", Kind: validator.KindText, Required: true,
				MinLength: 2, MaxLength: 255,
				MinLengthMessage: "Название навыка должно содержать минимум 2 символа",
			},
			{
				ID: "description", Label: "Описание", Kind: validator.KindText, Required: true,
				MinLength:        10,
				MinLengthMessage: "Описание должно содержать минимум 10 символов",
			},
			{ID: "level", Label: "Уровень", Kind: validator.KindSelect, Required: true, Options: append([]string(nil), SkillLevels...)},
			{ID: "category", Label: "Категория", Kind: validator.KindSelect, Required: true},
		},
	}
}

// ProposalCreateForm 创建交换提议表单
// skill_wanted 不能与 skill_offered 相同；deadlines 为可选项
func ProposalCreateForm() *validator.FormSpec {
	return &validator.FormSpec{
		Name:  ProposalCreate,
		Title: "Предложение обмена",
		Fields: []validator.FieldSpec{
			{ID: "skill_offered", Label: "Навык, который вы предлагаете", Kind: validator.KindSelect, Required: true},
			{
				ID: "skill_wanted", Label: "Навык, который хотите получить", Kind: validator.KindSelect,
				Required: true, DiffersFrom: "skill_offered",
			},
			{ID: "format", Label: "Формат занятий", Kind: validator.KindSelect, Required: true, Options: append([]string(nil), ProposalFormats...)},
			// 服务端模型允许为空，与标签一致；旧版前端脚本曾要求必填
			{ID: "deadlines", Label: "Сроки (необязательно)", Kind: validator.KindText},
			{
				ID: "description", Label: "Дополнительное описание", Kind: validator.KindText, Required: true,
				MinLength:        10,
				MinLengthMessage: "Описание должно содержать минимум 10 символов",
			},
		},
	}
}

// Builtin 返回全部内置表单（每次调用返回新副本）
func Builtin() []*validator.FormSpec {
	return []*validator.FormSpec{
		LoginForm(),
		RegistrationForm(),
		SkillCreateForm(),
		ProposalCreateForm(),
	}
}
