package validator

import "fmt"

// Messages 面向用户的提示文案
// 长度相关的文案通过函数生成，以便处理俄语的数词变格
type Messages struct {
	Required         string
	InvalidEmail     string
	PasswordMismatch string
	SameValue        string
	NotInOptions     string
	PasswordTooShort func(min int) string
	TooShort         func(min int) string
	TooLong          func(max int) string
}

// DefaultMessages 默认（俄语）文案
func DefaultMessages() Messages {
	return Messages{
		Required:         "Это поле обязательно для заполнения",
		InvalidEmail:     "Введите корректный email адрес",
		PasswordMismatch: "Пароли не совпадают",
		SameValue:        "Нельзя обменивать навык на самого себя",
		NotInOptions:     "Выберите значение из списка",
		PasswordTooShort: func(min int) string {
			return fmt.Sprintf("Пароль должен содержать минимум %d %s", min, pluralRu(min, "символ", "символа", "символов"))
		},
		TooShort: func(min int) string {
			return fmt.Sprintf("Значение должно содержать минимум %d %s", min, pluralRu(min, "символ", "символа", "символов"))
		},
		TooLong: func(max int) string {
			return fmt.Sprintf("Значение должно содержать не более %d %s", max, pluralRu(max, "символа", "символов", "символов"))
		},
	}
}

// withDefaults 补齐未设置的文案
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.Required == "" {
		m.Required = d.Required
	}
	if m.InvalidEmail == "" {
		m.InvalidEmail = d.InvalidEmail
	}
	if m.PasswordMismatch == "" {
		m.PasswordMismatch = d.PasswordMismatch
	}
	if m.SameValue == "" {
		m.SameValue = d.SameValue
	}
	if m.NotInOptions == "" {
		m.NotInOptions = d.NotInOptions
	}
	if m.PasswordTooShort == nil {
		m.PasswordTooShort = d.PasswordTooShort
	}
	if m.TooShort == nil {
		m.TooShort = d.TooShort
	}
	if m.TooLong == nil {
		m.TooLong = d.TooLong
	}
	return m
}

// pluralRu 俄语数词变格：1 символ, 2 символа, 5 символов, 11 символов, 21 символ
func pluralRu(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	mod100 := n % 100
	if mod100 >= 11 && mod100 <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	}
	return many
}
