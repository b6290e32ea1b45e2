package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	s.Equal("abc123", *String("abc123"))
}

func (s *pointerSuite) TestTime() {
	s.Nil(Time(time.Time{}))

	now := time.Unix(1660000000, 0)
	s.Equal(now, *Time(now))
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}
