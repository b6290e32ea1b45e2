package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

func TestAccessRepo(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	repo := New()

	_, err := repo.Get(c)
	req.Equal(domain.ErrNotFound, err)

	req.NoError(repo.Set(c, "0xABC"))
	h, err := repo.Get(c)
	req.NoError(err)
	req.Equal(domain.Address("0xabc"), h.Holder)

	h.Holder = "0xdef"
	again, err := repo.Get(c)
	req.NoError(err)
	req.Equal(domain.Address("0xabc"), again.Holder)

	req.NoError(repo.Set(c, ""))
	h, err = repo.Get(c)
	req.NoError(err)
	req.False(h.IsHeld())
}
