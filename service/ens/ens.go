package ens

import (
	"strings"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type ENS interface {
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}

// IsName reports whether s looks like an ens name rather than a hex address
func IsName(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), ".eth")
}

// ResolveTarget turns an ens name into its address and passes anything else through.
// A name nobody registered is domain.ErrInvalidAddress.
func ResolveTarget(c ctx.Ctx, e ENS, target string) (domain.Address, error) {
	if !IsName(target) {
		return domain.Address(target), nil
	}
	if e == nil {
		return "", domain.ErrInvalidAddress
	}
	addr, err := e.Resolve(c, target)
	if err != nil {
		return "", err
	}
	if addr.IsEmpty() {
		return "", domain.ErrInvalidAddress
	}
	return addr, nil
}
