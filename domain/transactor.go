package domain

import "github.com/x-xyz/goauction/base/ctx"

// Transactor runs fn atomically, every write done through the ctx handed to fn commits or
// rolls back together.
type Transactor interface {
	RunWithTransaction(ctx ctx.Ctx, fn func(ctx.Ctx) error) error
}

// NoTransaction runs fn directly, for in-memory setups that have nothing to roll back
type NoTransaction struct{}

func (NoTransaction) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	return fn(c)
}
