package services_test

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeChain is a scripted ChainClient. A transaction is unknown until known is set,
// stays in the pool until mined is set, and reports receiptStatus once mined.
type fakeChain struct {
	mu            sync.Mutex
	known         bool
	mined         bool
	receiptStatus uint64
	receiptBlock  uint64
	head          uint64
	rpcErr        error
	sendErr       error
	sendCalls     int
	sent          []*types.Transaction
}

func newFakeChain() *fakeChain {
	return &fakeChain{receiptStatus: types.ReceiptStatusSuccessful, receiptBlock: 10, head: 10}
}

func (f *fakeChain) set(fn func(c *fakeChain)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeChain) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeChain) sendAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCalls
}

func (f *fakeChain) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func (f *fakeChain) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeChain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeChain) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (f *fakeChain) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeChain) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rpcErr != nil {
		return nil, false, f.rpcErr
	}
	if !f.known {
		return nil, false, ethereum.NotFound
	}
	return types.NewTx(&types.LegacyTx{}), !f.mined, nil
}

func (f *fakeChain) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rpcErr != nil {
		return nil, f.rpcErr
	}
	if !f.mined {
		return nil, ethereum.NotFound
	}
	return &types.Receipt{
		Status:      f.receiptStatus,
		TxHash:      txHash,
		BlockNumber: new(big.Int).SetUint64(f.receiptBlock),
	}, nil
}

func (f *fakeChain) BlockNumber(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rpcErr != nil {
		return 0, f.rpcErr
	}
	return f.head, nil
}
