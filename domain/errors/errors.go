package errors

import "errors"

// ================= 业务领域错误定义 =================
// 所有业务逻辑相关的错误统一在此定义，避免跨包重复定义

// ErrUnauthorized 未认证错误
// 匿名调用者访问受保护过程时返回此错误
var ErrUnauthorized = errors.New("unauthorized: authenticated identity required")

// ErrProcedureNotFound 过程不存在错误
// 按名称查找远程过程失败时返回此错误
var ErrProcedureNotFound = errors.New("procedure not found in registry")

// ErrStorageUnavailable 存储不可用错误
// 数据库连接类故障（瞬态，调用方可安全重试）
var ErrStorageUnavailable = errors.New("storage unavailable, safe to retry")

// ErrIntegrityViolation 引用完整性错误
// ensure-then-create 顺序下按构造不应出现；一旦出现必须上抛，不得吞掉
var ErrIntegrityViolation = errors.New("referential integrity violation")
