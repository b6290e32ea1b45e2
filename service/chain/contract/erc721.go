package contract

import (
	"crypto/ecdsa"
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/chain"
)

const defaultTransferGas = uint64(200000)

type Erc721Contract interface {
	Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error)
	OwnerOf(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error)
	// SafeTransferFrom moves tokenId from the key's address to `to`
	SafeTransferFrom(ctx bCtx.Ctx, chainId int32, key *ecdsa.PrivateKey, addr string, to common.Address, tokenId *big.Int) (common.Hash, error)
}

type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
	gasLimit          uint64
}

// NewErc721 uses gasLimit for transfers, zero picks a default
func NewErc721(chainService chain.Client, gasLimit uint64) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	if gasLimit == 0 {
		gasLimit = defaultTransferGas
	}
	return &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		erc721InterfaceId: interfaceId,
		gasLimit:          gasLimit,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "supportsInterface", e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId int32, addr string, tokenId *big.Int) (string, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return unpacked[0].(common.Address).String(), nil
}

func (e *Erc721) SafeTransferFrom(ctx bCtx.Ctx, chainId int32, key *ecdsa.PrivateKey, addr string, to common.Address, tokenId *big.Int) (common.Hash, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)
	data, err := e.abi.Pack("safeTransferFrom", from, to, tokenId)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Pack failed")
		return common.Hash{}, err
	}
	return e.chainService.Send(ctx, chainId, key, chain.Tx{
		To:       common.HexToAddress(addr),
		Data:     data,
		GasLimit: e.gasLimit,
	})
}
