package formctl

// InputSource 输入来源，按字段 ID 实时读取用户输入（文本或选择项）
type InputSource interface {
	Value(fieldID string) string
}

// Presenter 展示层
// 所有方法都可能在计时器 goroutine 中被调用（SetLoading / ShowNotice），实现方需自行保证线程安全
type Presenter interface {
	// ShowError 将字段标记为错误并显示提示
	ShowError(fieldID, message string)
	// ClearError 清除字段的错误标记和提示
	ClearError(fieldID string)
	// Focus 将输入焦点移到字段
	Focus(fieldID string)
	// SetFilled 浮动标签状态：字段有值（或获得焦点）时为 true
	SetFilled(fieldID string, filled bool)
	// SetLoading 提交按钮的加载状态
	SetLoading(loading bool)
	// ShowNotice 显示临时提示（如跳转提示）
	ShowNotice(message string)
}

// InputFunc 函数适配器
type InputFunc func(fieldID string) string

// Value 实现 InputSource 接口
func (f InputFunc) Value(fieldID string) string {
	return f(fieldID)
}
