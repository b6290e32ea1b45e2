package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/goauction/base/ctx"
	bEthereum "github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/base/log"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrPending          = errors.New("transaction pending")
	ErrReverted         = errors.New("transaction reverted")
)

const defaultMaxInflight = 8

type ClientCfg struct {
	RpcUrls map[int32]string
	// MaxInflight caps concurrent rpc calls per chain
	MaxInflight int
}

// Tx is an unsigned transaction, a nil Value sends no native currency
type Tx struct {
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
}

// Transfer is the native currency moved by a mined transaction
type Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Block *big.Int
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	// Send signs tx with key and broadcasts it, it does not wait for the receipt
	Send(ctx bCtx.Ctx, chainId int32, key *ecdsa.PrivateKey, tx Tx) (common.Hash, error)
	// Transfer looks up a mined transaction. It fails with ErrPending until a receipt exists
	// and with ErrReverted when execution failed.
	Transfer(ctx bCtx.Ctx, chainId int32, hash common.Hash) (*Transfer, error)
}

type clientImpl struct {
	clients map[int32]bEthereum.RPC
	// sends from one process are serialised per chain so pending nonces do not collide
	sendMu map[int32]*sync.Mutex
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error

	maxInflight := cfg.MaxInflight
	if maxInflight <= 0 {
		maxInflight = defaultMaxInflight
	}

	clients := make(map[int32]bEthereum.RPC)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = bEthereum.NewTrottledClient(client, maxInflight)
	}
	return newClient(clients), anyerr
}

func newClient(clients map[int32]bEthereum.RPC) *clientImpl {
	sendMu := make(map[int32]*sync.Mutex, len(clients))
	for chainId := range clients {
		sendMu[chainId] = &sync.Mutex{}
	}
	return &clientImpl{
		clients: clients,
		sendMu:  sendMu,
	}
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Send(ctx bCtx.Ctx, chainId int32, key *ecdsa.PrivateKey, tx Tx) (common.Hash, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}

	mu := c.sendMu[chainId]
	mu.Lock()
	defer mu.Unlock()

	from := crypto.PubkeyToAddress(key.PublicKey)
	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "from": from.Hex()}).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}

	value := tx.Value
	if value == nil {
		value = new(big.Int)
	}
	to := tx.To
	signed, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      tx.GasLimit,
		To:       &to,
		Value:    value,
		Data:     tx.Data,
	}), types.LatestSignerForChainID(big.NewInt(int64(chainId))), key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return common.Hash{}, err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"nonce": nonce,
			"to":    to.Hex(),
		}).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}

	ctx.WithFields(log.Fields{
		"txHash": signed.Hash().Hex(),
		"nonce":  nonce,
		"to":     to.Hex(),
		"value":  value.String(),
	}).Info("transaction sent")
	return signed.Hash(), nil
}

func (c *clientImpl) Transfer(ctx bCtx.Ctx, chainId int32, hash common.Hash) (*Transfer, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	tx, pending, err := client.TransactionByHash(ctx, hash)
	if err != nil {
		if err != ethereum.NotFound {
			ctx.WithFields(log.Fields{"err": err, "txHash": hash.Hex()}).Error("client.TransactionByHash failed")
		}
		return nil, err
	}
	if pending {
		return nil, ErrPending
	}

	receipt, err := client.TransactionReceipt(ctx, hash)
	if err == ethereum.NotFound {
		return nil, ErrPending
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "txHash": hash.Hex()}).Error("client.TransactionReceipt failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrReverted
	}

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(int64(chainId))), tx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "txHash": hash.Hex()}).Error("types.Sender failed")
		return nil, err
	}
	res := &Transfer{
		From:  from,
		Value: tx.Value(),
		Block: receipt.BlockNumber,
	}
	if to := tx.To(); to != nil {
		res.To = *to
	}
	return res, nil
}
