package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern local@domain.tld，各段不含空白和 @
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail 判断是否为合法邮箱格式
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// rule 单条字段规则，返回空字符串表示通过
// 规则按顺序执行，第一条失败的规则决定结果
type rule func(e *Validator, form *FormSpec, field *FieldSpec, value string, values Values) string

// fieldRules 必填检查之后的规则链
var fieldRules = []rule{
	emailRule,
	passwordRule,
	confirmationRule,
	lengthRule,
	optionsRule,
	differsRule,
}

func emailRule(e *Validator, _ *FormSpec, field *FieldSpec, value string, _ Values) string {
	if field.Kind != KindEmail || IsEmail(value) {
		return ""
	}
	return e.messages.InvalidEmail
}

func passwordRule(e *Validator, form *FormSpec, field *FieldSpec, value string, _ Values) string {
	if field.Kind != KindPassword {
		return ""
	}
	min := passwordMinLength(form, field)
	if utf8.RuneCountInString(value) >= min {
		return ""
	}
	return e.messages.PasswordTooShort(min)
}

func confirmationRule(e *Validator, _ *FormSpec, field *FieldSpec, value string, values Values) string {
	if field.Kind != KindPasswordConfirmation {
		return ""
	}
	if value == normalize(values[field.Match]) {
		return ""
	}
	return e.messages.PasswordMismatch
}

// lengthRule text / select 的长度限制，password 的长度由 passwordRule 负责
func lengthRule(e *Validator, _ *FormSpec, field *FieldSpec, value string, _ Values) string {
	if field.Kind != KindText && field.Kind != KindSelect {
		return ""
	}
	n := utf8.RuneCountInString(value)
	if field.MinLength > 0 && n < field.MinLength {
		if field.MinLengthMessage != "" {
			return field.MinLengthMessage
		}
		return e.messages.TooShort(field.MinLength)
	}
	if field.MaxLength > 0 && n > field.MaxLength {
		return e.messages.TooLong(field.MaxLength)
	}
	return ""
}

func optionsRule(e *Validator, _ *FormSpec, field *FieldSpec, value string, _ Values) string {
	if field.Kind != KindSelect || len(field.Options) == 0 {
		return ""
	}
	for _, opt := range field.Options {
		if opt == value {
			return ""
		}
	}
	return e.messages.NotInOptions
}

func differsRule(e *Validator, _ *FormSpec, field *FieldSpec, value string, values Values) string {
	if field.DiffersFrom == "" {
		return ""
	}
	other := normalize(values[field.DiffersFrom])
	if value == "" || other == "" || value != other {
		return ""
	}
	return e.messages.SameValue
}

// passwordMinLength 字段配置优先，其次表单默认值，最少为 1
func passwordMinLength(form *FormSpec, field *FieldSpec) int {
	if field.MinLength > 0 {
		return field.MinLength
	}
	if form != nil && form.PasswordMinLength > 0 {
		return form.PasswordMinLength
	}
	return 1
}

func normalize(s string) string {
	return strings.TrimSpace(s)
}
