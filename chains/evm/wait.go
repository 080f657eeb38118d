package evm

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chinmay1088/emptier/errs"
)

// waitMined polls for the receipt of hash until it appears or ctx ends.
// Transient RPC errors are logged and polling continues.
func (d *Driver) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if d.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := d.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			d.logger.Debug("receipt lookup for %s failed: %v", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, errs.WithDetails(errs.Because(errs.ErrConfirmTimeout, ctx.Err()), map[string]string{"tx": hash.Hex()})
		case <-ticker.C:
		}
	}
}
