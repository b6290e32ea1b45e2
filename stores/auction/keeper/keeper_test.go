package keeper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	mAuction "github.com/x-xyz/goauction/domain/auction/mocks"
)

const keeperAddr = domain.Address("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")

var mockCtx = ctx.Background()

type keeperSuite struct {
	suite.Suite

	auction *mAuction.Usecase
	k       *Keeper
}

func TestKeeperSuite(t *testing.T) {
	suite.Run(t, new(keeperSuite))
}

func (s *keeperSuite) SetupTest() {
	s.auction = mAuction.NewUsecase(s.T())

	k, err := New(KeeperCfg{
		Auction:  s.auction,
		Address:  keeperAddr,
		Attempts: 3,
		Backoff:  func() *backoff.Backoff { return backoff.NewLinear(time.Millisecond, time.Millisecond) },
	})
	s.Require().NoError(err)
	s.k = k
}

func status(phase auction.Phase) *auction.Status {
	return &auction.Status{Round: "r1", Phase: phase}
}

func (s *keeperSuite) TestNew() {
	_, err := New(KeeperCfg{Auction: s.auction})
	s.Equal(domain.ErrInvalidAddress, err)

	_, err = New(KeeperCfg{Auction: s.auction, Address: keeperAddr, Schedule: "every now and then"})
	s.Error(err)

	s.Equal(keeperAddr.ToLower(), s.k.address)
	s.Equal(defaultTimeout, s.k.timeout)
}

func (s *keeperSuite) TestTickSkipsUnlessExpired() {
	for _, phase := range []auction.Phase{auction.PhaseInactive, auction.PhaseActive} {
		s.auction.On("Status", mock.Anything).Return(status(phase), nil).Once()

		settled, err := s.k.Tick(mockCtx)
		s.NoError(err)
		s.False(settled)
	}
	s.auction.AssertNotCalled(s.T(), "SettleAuction", mock.Anything, mock.Anything)
}

func (s *keeperSuite) TestTickSettlesExpired() {
	s.auction.On("Status", mock.Anything).Return(status(auction.PhaseExpired), nil).Once()
	s.auction.On("SettleAuction", mock.Anything, keeperAddr.ToLower()).Return(nil).Once()

	settled, err := s.k.Tick(mockCtx)
	s.NoError(err)
	s.True(settled)
}

func (s *keeperSuite) TestTickLostRace() {
	s.auction.On("Status", mock.Anything).Return(status(auction.PhaseExpired), nil).Once()
	s.auction.On("SettleAuction", mock.Anything, keeperAddr.ToLower()).Return(domain.ErrWrongPhase).Once()

	settled, err := s.k.Tick(mockCtx)
	s.NoError(err)
	s.False(settled)
}

func (s *keeperSuite) TestTickErrors() {
	errStatus := errors.New("mongo down")
	s.auction.On("Status", mock.Anything).Return(nil, errStatus).Once()

	_, err := s.k.Tick(mockCtx)
	s.Equal(errStatus, err)

	errSettle := errors.New("payout failed")
	s.auction.On("Status", mock.Anything).Return(status(auction.PhaseExpired), nil).Once()
	s.auction.On("SettleAuction", mock.Anything, mock.Anything).Return(errSettle).Once()

	_, err = s.k.Tick(mockCtx)
	s.Equal(errSettle, err)
}

func (s *keeperSuite) TestRunRetries() {
	s.auction.On("Status", mock.Anything).Return(nil, errors.New("timeout")).Twice()
	s.auction.On("Status", mock.Anything).Return(status(auction.PhaseExpired), nil).Once()
	s.auction.On("SettleAuction", mock.Anything, mock.Anything).Return(nil).Once()

	s.k.run()
}

func (s *keeperSuite) TestRunGivesUp() {
	s.auction.On("Status", mock.Anything).Return(nil, errors.New("timeout")).Times(3)

	s.k.run()
	s.auction.AssertNumberOfCalls(s.T(), "Status", 3)
}

func (s *keeperSuite) TestRunRecoversPanic() {
	s.auction.On("Status", mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil).Once()

	s.NotPanics(s.k.run)
}

func (s *keeperSuite) TestStartStop() {
	s.auction.On("Status", mock.Anything).Return(status(auction.PhaseActive), nil).Maybe()
	s.True(s.k.Next().IsZero())

	s.k.Start()
	s.False(s.k.Next().IsZero())
	s.k.Stop()
}
