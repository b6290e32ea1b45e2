package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/goauction/domain"
)

type amountSuite struct {
	suite.Suite
}

func TestAmountSuite(t *testing.T) {
	suite.Run(t, new(amountSuite))
}

func (s *amountSuite) TestToEther() {
	wei, _ := new(big.Int).SetString("2040000000000000000", 10)
	s.Equal("2.04", ToEther(wei).String())
	s.Equal("0", ToEther(nil).String())
}

func (s *amountSuite) TestParseEther() {
	wei, err := ParseEther("2.04")
	s.Require().NoError(err)
	s.Equal("2040000000000000000", wei.String())

	wei, err = ParseEther("0.000000000000000001")
	s.Require().NoError(err)
	s.Equal("1", wei.String())

	_, err = ParseEther("0.0000000000000000001")
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)

	_, err = ParseEther("abc")
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func (s *amountSuite) TestParseAmount() {
	wei, err := ParseAmount("105", "")
	s.Require().NoError(err)
	s.Equal(int64(105), wei.Int64())

	wei, err = ParseAmount("1", "ether")
	s.Require().NoError(err)
	s.Equal("1000000000000000000", wei.String())

	_, err = ParseAmount("1.5", "wei")
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func (s *amountSuite) TestDecimal128RoundTrip() {
	wei, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	d, err := ToDecimal128(wei)
	s.Require().NoError(err)

	back, err := FromDecimal128(d)
	s.Require().NoError(err)
	s.Equal(wei.String(), back.String())
}

func (s *amountSuite) TestFromDecimal128WithExponent() {
	d, err := primitive.ParseDecimal128("2.5E+3")
	s.Require().NoError(err)
	n, err := FromDecimal128(d)
	s.Require().NoError(err)
	s.Equal(int64(2500), n.Int64())

	d, err = primitive.ParseDecimal128("2.5")
	s.Require().NoError(err)
	_, err = FromDecimal128(d)
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)
}
