package book

import "context"

// TxManager 事务管理器接口(由infrastructure层的mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
