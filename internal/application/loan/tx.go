package loan

import "context"

// TxManager 事务管理器接口(由infrastructure层的mysql.TxManager实现)
// 用例层只依赖接口,测试时可以用直接执行fn的假实现替代
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
