package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	bEthereum "github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/service/chain"
	mChain "github.com/x-xyz/goauction/service/chain/mocks"
)

func TestErc721_OwnerOf(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := mChain.NewClient(t)
	contractAddr := "0x71c4658acc7b53ee814a29ce31100ff85ca23ca7"
	owner := common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")

	client.On("Call", ctx, int32(1), common.HexToAddress(contractAddr), (*big.Int)(nil), baseabi.ERC721TokenABI, "ownerOf", []interface{}{big.NewInt(42)}).
		Return([]interface{}{owner}, nil).Once()

	res, err := NewErc721(client, 0).OwnerOf(ctx, 1, contractAddr, big.NewInt(42))
	req.NoError(err)
	req.Equal(owner.Hex(), res)
}

func TestErc721_Supports721Interface(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := mChain.NewClient(t)

	client.On("Call", ctx, int32(1), mock.Anything, (*big.Int)(nil), mock.Anything, "supportsInterface", mock.Anything).
		Return([]interface{}{true}, nil).Once()

	ok, err := NewErc721(client, 0).Supports721Interface(ctx, 1, "0x71c4658acc7b53ee814a29ce31100ff85ca23ca7")
	req.NoError(err)
	req.True(ok)
}

func TestErc721_SafeTransferFrom(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	client := mChain.NewClient(t)
	key, vault, err := bEthereum.LoadKey("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	req.NoError(err)
	contractAddr := common.HexToAddress("0x71c4658acc7b53ee814a29ce31100ff85ca23ca7")
	to := common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	txHash := common.HexToHash("0x01")

	data, err := baseabi.ERC721TokenABI.Pack("safeTransferFrom", vault, to, big.NewInt(7))
	req.NoError(err)

	client.On("Send", ctx, int32(5), key, chain.Tx{To: contractAddr, Data: data, GasLimit: 150000}).
		Return(txHash, nil).Once()

	res, err := NewErc721(client, 150000).SafeTransferFrom(ctx, 5, key, contractAddr.Hex(), to, big.NewInt(7))
	req.NoError(err)
	req.Equal(txHash, res)
}
