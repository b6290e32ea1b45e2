package contract

import (
	"fmt"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/chain"
)

// erc1271MagicValue is bytes4(keccak256("isValidSignature(bytes32,bytes)"))
var erc1271MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

// Erc1271Contract checks signatures of contract wallets bidding through the auth flow
type Erc1271Contract interface {
	IsValidSignature(ctx bCtx.Ctx, chainId int32, addr string, hash common.Hash, signature []byte) (bool, error)
}

type Erc1271 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc1271(chainService chain.Client) Erc1271Contract {
	return &Erc1271{
		abi:          baseabi.ERC1271ABI,
		chainService: chainService,
	}
}

func (e *Erc1271) IsValidSignature(ctx bCtx.Ctx, chainId int32, addr string, hash common.Hash, signature []byte) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "isValidSignature", hash, signature)
	if err != nil {
		return false, err
	}
	if len(unpacked) != 1 {
		return false, fmt.Errorf("isValidSignature returned %d values", len(unpacked))
	}
	magic, ok := unpacked[0].([4]byte)
	if !ok {
		return false, fmt.Errorf("isValidSignature returned %T", unpacked[0])
	}
	return magic == erc1271MagicValue, nil
}
