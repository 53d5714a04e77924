// Package errors 存放跨模块共享的业务哨兵错误。
// 各 Service 自身的哨兵错误就近定义在对应的 service 文件中。
package errors

import "errors"

// ErrOptimisticLock 版本号冲突：记录在读取后已被并发修改。
// Repository 层在 UPDATE 影响行数为 0 时返回；Service 层据此换成模块哨兵。
var ErrOptimisticLock = errors.New("记录已被并发修改，请刷新后重试")
