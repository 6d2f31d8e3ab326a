package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSpec 表单配置错误（编写配置时的程序错误，而非用户输入错误）
var ErrInvalidSpec = errors.New("validator: invalid form spec")

// errorMessageEstimateLen 单条错误文本的预估长度，用于预分配
const errorMessageEstimateLen = 64

// FieldIssue 单条配置问题
type FieldIssue struct {
	// Field 出问题的字段 ID（表单级问题为空）
	Field string `json:"field,omitempty"`
	// Namespace 结构体路径（如 FormSpec.Fields[2].Match）
	Namespace string `json:"namespace,omitempty"`
	// Tag 规则标签（如 required, oneof, unknown_ref）
	Tag string `json:"tag"`
	// Param 规则参数
	Param string `json:"param,omitempty"`
}

// String 返回友好的问题描述
func (fi *FieldIssue) String() string {
	target := fi.Namespace
	if target == "" {
		target = fi.Field
	}
	if fi.Param != "" {
		return fmt.Sprintf("'%s' failed on '%s' (%s)", target, fi.Tag, fi.Param)
	}
	return fmt.Sprintf("'%s' failed on '%s'", target, fi.Tag)
}

// ConfigError 表单配置检查失败时返回，汇总全部问题
type ConfigError struct {
	Form   string        `json:"form"`
	Issues []*FieldIssue `json:"issues"`
}

// Error 实现 error 接口
func (ce *ConfigError) Error() string {
	var builder strings.Builder
	builder.Grow(len(ce.Issues)*errorMessageEstimateLen + 32)
	builder.WriteString("form '")
	builder.WriteString(ce.Form)
	builder.WriteString("': ")
	for i, issue := range ce.Issues {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(issue.String())
	}
	return builder.String()
}

// Unwrap 使 errors.Is(err, ErrInvalidSpec) 成立
func (ce *ConfigError) Unwrap() error {
	return ErrInvalidSpec
}

func (ce *ConfigError) add(field, namespace, tag, param string) {
	ce.Issues = append(ce.Issues, &FieldIssue{Field: field, Namespace: namespace, Tag: tag, Param: param})
}

// addValidatorErrors 将底层验证器的错误转换为 FieldIssue
func (ce *ConfigError) addValidatorErrors(err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		ce.add("", "", "invalid", err.Error())
		return
	}
	for _, e := range validationErrors {
		ce.add("", e.Namespace(), e.Tag(), e.Param())
	}
}

func (ce *ConfigError) hasIssues() bool {
	return len(ce.Issues) > 0
}
