package contract

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/goauction/base/ctx"
	mChain "github.com/x-xyz/goauction/service/chain/mocks"
)

func TestErc1271_IsValidSignature(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	wallet := "0xAc461fDFc10C71861f37fe42589334e021BaA1ee"
	hash := common.HexToHash("0x7d4a470c1f919efbc629d12c57cf5dbc7eee958d0b6d787f842944c0be83c8c3")

	var magic, wrong [4]byte
	copy(magic[:], common.Hex2Bytes("1626ba7e"))
	copy(wrong[:], common.Hex2Bytes("ffffffff"))

	tests := []struct {
		name    string
		reply   []interface{}
		err     error
		want    bool
		wantErr bool
	}{
		{name: "magic value", reply: []interface{}{magic}, want: true},
		{name: "other value", reply: []interface{}{wrong}, want: false},
		{name: "call reverted", err: errors.New("execution reverted"), wantErr: true},
		{name: "empty reply", reply: []interface{}{}, wantErr: true},
		{name: "wrong type", reply: []interface{}{true}, wantErr: true},
	}

	for _, tt := range tests {
		client := mChain.NewClient(t)
		client.On("Call", ctx, int32(5), common.HexToAddress(wallet), (*big.Int)(nil), mock.Anything, "isValidSignature", mock.Anything).
			Return(tt.reply, tt.err).Once()

		got, err := NewErc1271(client).IsValidSignature(ctx, 5, wallet, hash, []byte{1, 2})
		if tt.wantErr {
			req.Error(err, tt.name)
			continue
		}
		req.NoError(err, tt.name)
		req.Equal(tt.want, got, tt.name)
	}
}
