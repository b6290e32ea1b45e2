package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/goauction/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// IssueNonce returns the nonce the address has to embed in its signing message
	IssueNonce(ctx ctx.Ctx, address Address) (string, error)
	// SignToken verifies signature against the pending nonce of address and returns a jwt
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}

// NonceRepo keeps single-use sign-in nonces
type NonceRepo interface {
	Store(ctx ctx.Ctx, address Address, nonce string) error
	// Take returns the pending nonce and deletes it, ErrNotFound if none is pending
	Take(ctx ctx.Ctx, address Address) (string, error)
}
