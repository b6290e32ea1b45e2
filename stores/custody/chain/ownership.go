package chain

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	compoundcache "github.com/x-xyz/goauction/service/cache/compoundCache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/goauction/service/cache/provider/redis"
	"github.com/x-xyz/goauction/service/chain/contract"
	"github.com/x-xyz/goauction/service/redis"
)

// ownerEntry is what the ownership cache stores, cbor keeps it a few bytes long
type ownerEntry struct {
	Owner domain.Address `cbor:"1,keyasint"`
}

type ownership struct {
	erc721 contract.Erc721Contract
	cache  cache.Service
}

// NewOwnershipVerifier reads ownerOf through a short lived local and redis cache
func NewOwnershipVerifier(erc721 contract.Erc721Contract, redis redis.Service) custody.OwnershipVerifier {
	return newOwnership(erc721, compoundcache.NewCompoundCache([]cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxCustodyOwner,
			Cache: primitive.NewPrimitive(keys.PfxCustodyOwner, 8),
		}),
		cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxCustodyOwner,
			Cache: redisCache.NewRedis(redis),
		}),
	}))
}

func newOwnership(erc721 contract.Erc721Contract, cache cache.Service) *ownership {
	return &ownership{erc721: erc721, cache: cache}
}

func (o *ownership) OwnerOf(c ctx.Ctx, item custody.Item) (domain.Address, error) {
	tokenId, err := item.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}

	res := ownerEntry{}
	if err := o.cache.GetByFunc(c, item.String(), &res, func() (interface{}, error) {
		owner, err := o.erc721.OwnerOf(c, int32(item.ChainId), item.Contract.String(), tokenId)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"item": item.String(),
			}).Error("erc721.OwnerOf failed")
			return nil, err
		}
		return &ownerEntry{Owner: domain.Address(owner)}, nil
	}); err != nil {
		return "", err
	}
	return res.Owner, nil
}
