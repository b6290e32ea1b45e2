package domain

import (
	"errors"

	"golang.org/x/xerrors"
)

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")

	// auction errors, every one of them leaves the auction untouched
	ErrUnauthorized     = errors.New("caller is not the owner")
	ErrWrongPhase       = errors.New("operation not allowed in current auction phase")
	ErrInvalidConfig    = errors.New("invalid auction config")
	ErrDeadlineInPast   = xerrors.Errorf("deadline must be in the future: %w", ErrInvalidConfig)
	ErrBelowStartingBid = errors.New("bid below starting bid")
	ErrBelowMinimumBid  = errors.New("bid below minimum bid increase")

	// ledger errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTxNotConfirmed    = errors.New("transaction not confirmed")

	ErrNotImplemented = errors.New("not implemented")
)
