package chain

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/service/chain/contract"
)

type transferer struct {
	erc721 contract.Erc721Contract
	vault  *ecdsa.PrivateKey
}

// NewTransferer sends items out of the vault wallet owned by key
func NewTransferer(erc721 contract.Erc721Contract, key *ecdsa.PrivateKey) custody.Transferer {
	return &transferer{erc721: erc721, vault: key}
}

func (t *transferer) Transfer(c ctx.Ctx, item custody.Item, to domain.Address) (domain.TxHash, error) {
	tokenId, err := item.TokenId.ToBigInt()
	if err != nil {
		return "", err
	}
	hash, err := t.erc721.SafeTransferFrom(c, int32(item.ChainId), t.vault, item.Contract.String(), common.HexToAddress(to.String()), tokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"item": item.String(),
			"to":   to,
		}).Error("erc721.SafeTransferFrom failed")
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}
