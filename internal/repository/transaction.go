package repository

import "context"

// Transactor 为一次业务操作提供事务边界。
// fn 收到的 ctx 携带事务，同一个 ctx 传给各 Repository 即可共享该事务；
// fn 返回错误时整个事务回滚。
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
