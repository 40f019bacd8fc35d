package middleware

// ContextKey 定义 Context 中使用的常量 key
// 避免在代码中硬编码字符串，防止拼写错误导致的 bug

const (
	// ContextKeyIdentity 存储已解析身份（*entity.Identity）的 Context key
	// 未设置表示匿名请求
	ContextKeyIdentity = "identity"
)
