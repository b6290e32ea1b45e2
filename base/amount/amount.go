package amount

import (
	"math/big"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/domain"
)

// EtherDecimals is the number of decimals of the native currency
const EtherDecimals = 18

// ToEther formats a wei amount for display, nil is zero
func ToEther(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(domain.CopyBig(wei), -EtherDecimals)
}

// ParseEther turns a display amount like "2.04" into wei. More than 18 decimals is an error.
func ParseEther(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, xerrors.Errorf("decimal.NewFromString %q: %w", s, domain.ErrInvalidNumberFormat)
	}
	wei := d.Shift(EtherDecimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, xerrors.Errorf("%s has more than %d decimals: %w", s, EtherDecimals, domain.ErrInvalidNumberFormat)
	}
	return wei.BigInt(), nil
}

// ParseWei accepts a base 10 integer
func ParseWei(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, xerrors.Errorf("invalid wei %q: %w", s, domain.ErrInvalidNumberFormat)
	}
	return n, nil
}

// ParseAmount accepts either wei or, when unit is "ether", a display amount
func ParseAmount(s, unit string) (*big.Int, error) {
	if unit == "ether" {
		return ParseEther(s)
	}
	return ParseWei(s)
}

// ToDecimal128 stores wei losslessly, 34 significant digits covers every realistic balance
func ToDecimal128(wei *big.Int) (primitive.Decimal128, error) {
	d, ok := primitive.ParseDecimal128FromBigInt(domain.CopyBig(wei), 0)
	if !ok {
		return primitive.Decimal128{}, xerrors.Errorf("%s does not fit decimal128: %w", wei, domain.ErrInvalidNumberFormat)
	}
	return d, nil
}

func FromDecimal128(d primitive.Decimal128) (*big.Int, error) {
	n, exp, err := d.BigInt()
	if err != nil {
		return nil, err
	}
	if exp == 0 {
		return n, nil
	}
	res := decimal.NewFromBigInt(n, int32(exp))
	if !res.Equal(res.Truncate(0)) {
		return nil, xerrors.Errorf("fractional wei %s: %w", d, domain.ErrInvalidNumberFormat)
	}
	return res.BigInt(), nil
}
