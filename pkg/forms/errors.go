package forms

import "errors"

var (
	// ErrFormNotFound 表单未注册
	ErrFormNotFound = errors.New("form not found")

	// ErrFormAlreadyExists 表单已注册
	ErrFormAlreadyExists = errors.New("form already exists")

	// ErrInvalidName 表单名称不合法
	ErrInvalidName = errors.New("invalid form name")

	// ErrNilForm 表单为nil
	ErrNilForm = errors.New("form cannot be nil")
)
