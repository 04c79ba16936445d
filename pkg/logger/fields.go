package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldErrorCode 错误码字段
	FieldErrorCode = "errorCode"

	// FieldErrorMessage 错误描述字段
	FieldErrorMessage = "errorMessage"

	// FieldProductID 商品 ID 字段
	FieldProductID = "productId"

	// FieldNoteID 备注 ID 字段
	FieldNoteID = "noteId"

	// FieldNote 备注内容字段
	FieldNote = "note"

	// FieldCount 记录数量字段
	FieldCount = "count"

	// FieldVersion 版本字段
	FieldVersion = "version"
)
