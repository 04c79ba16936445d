package code

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	SuccessNoteCreate  = NewSuss(200, lang{en: "Product note created successfully", zh_cn: "商品备注创建成功"})
	SuccessNoteSave    = NewSuss(201, lang{en: "Note saved successfully", zh_cn: "备注保存成功"})
	SuccessNoteDelete  = NewSuss(202, lang{en: "Note deleted successfully", zh_cn: "备注删除成功"})
	SuccessNoteUpdate  = NewSuss(203, lang{en: "Note updated successfully", zh_cn: "备注更新成功"})
	SuccessNoteNoWrite = NewSuss(204, lang{en: "No note was written", zh_cn: "未写入任何备注"})

	ErrorServerInternal   = NewError(500, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI      = NewError(404, lang{en: "API not found", zh_cn: "找不到接口"})
	ErrorInvalidParams    = NewError(400, lang{en: "Invalid parameters", zh_cn: "参数验证失败"})
	ErrorInvalidAuthToken = NewError(401, lang{en: "Invalid authorization token", zh_cn: "授权令牌无效"})
	ErrorTooManyRequests  = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})

	ErrorDBQuery = NewError(505, lang{en: "Database query failed", zh_cn: "数据库查询失败"})

	ErrorNoteEmpty       = NewError(600, lang{en: "Note content cannot be empty", zh_cn: "备注内容不能为空"})
	ErrorNoteTooLong     = NewError(601, lang{en: "Note content is too long (max 1000 characters)", zh_cn: "备注内容过长（最多 1000 个字符）"})
	ErrorNoteNotFound    = NewError(602, lang{en: "Product note not found", zh_cn: "商品备注不存在"})
	ErrorProductNotFound = NewError(603, lang{en: "Product not found or inactive", zh_cn: "商品不存在或未启用"})
	ErrorNoteAction      = NewError(604, lang{en: "An error occurred while processing the note", zh_cn: "处理备注时发生错误"})
	ErrorNoteUpdate      = NewError(605, lang{en: "Product note was not updated", zh_cn: "商品备注未更新"})
	ErrorNoteDelete      = NewError(606, lang{en: "Product note was not deleted", zh_cn: "商品备注未删除"})
)
