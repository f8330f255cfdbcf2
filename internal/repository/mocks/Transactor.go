package mocks

import "context"

// Transactor 直接在调用方的 ctx 上执行 fn，不开启真实事务。
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
