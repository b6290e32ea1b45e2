package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/chain/contract"
)

const defaultTokenTtl = 24 * time.Hour

type AuthUseCaseCfg struct {
	JwtSecret string
	// SignatureMsg is the message template, %s is replaced with the nonce
	SignatureMsg string
	TokenTtl     time.Duration
	NonceRepo    domain.NonceRepo
	// Erc1271 verifies contract wallets, optional
	Erc1271 contract.Erc1271Contract
	ChainId int32
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	tokenTtl     time.Duration
	nonce        domain.NonceRepo
	erc1271      contract.Erc1271Contract
	chainId      int32
	now          func() time.Time
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	ttl := cfg.TokenTtl
	if ttl <= 0 {
		ttl = defaultTokenTtl
	}
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		tokenTtl:     ttl,
		nonce:        cfg.NonceRepo,
		erc1271:      cfg.Erc1271,
		chainId:      cfg.ChainId,
		now:          time.Now,
	}
}

func (im *impl) IssueNonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	if !validator.IsValidAddress(address.String()) {
		return "", domain.ErrInvalidAddress
	}
	nonce := uuid.NewString()
	if err := im.nonce.Store(ctx, address, nonce); err != nil {
		ctx.WithField("err", err).Error("nonce.Store failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !validator.IsValidAddress(address.String()) {
		return "", domain.ErrInvalidAddress
	}

	nonce, err := im.nonce.Take(ctx, address)
	if errors.Is(err, domain.ErrNotFound) {
		return "", xerrors.Errorf("no pending nonce for %s: %w", address, domain.ErrInvalidSignature)
	} else if err != nil {
		ctx.WithField("err", err).Error("nonce.Take failed")
		return "", err
	}

	msg := []byte(fmt.Sprintf(im.signatureMsg, nonce))
	if ok, err := im.verify(ctx, address, msg, signature); err != nil {
		return "", err
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  im.now().Unix(),
			ExpiresAt: im.now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

// verify accepts an EOA personal_sign signature and falls back to ERC-1271 for contract wallets
func (im *impl) verify(ctx ctx.Ctx, address domain.Address, msg []byte, signature string) (bool, error) {
	ok, err := ethereum.ValidateMsgSignature(msg, signature, address.String())
	if err == nil && ok {
		return true, nil
	}
	if im.erc1271 == nil {
		if err != nil {
			ctx.WithField("err", err).Warn("ValidateMsgSignature failed")
		}
		return false, nil
	}

	sig, decodeErr := hexutil.Decode(signature)
	if decodeErr != nil {
		return false, nil
	}
	ok, err = im.erc1271.IsValidSignature(ctx, im.chainId, address.String(), common.BytesToHash(accounts.TextHash(msg)), sig)
	if err != nil {
		// an EOA has no code, the call reverts
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Warn("erc1271.IsValidSignature failed")
		return false, nil
	}
	return ok, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}
