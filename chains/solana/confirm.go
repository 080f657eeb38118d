package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/chinmay1088/emptier/errs"
)

// confirm polls the signature status until the cluster reports it confirmed or
// finalized, the transaction fails, or ctx ends.
func (d *Driver) confirm(ctx context.Context, sig solana.Signature) error {
	if d.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		out, err := d.rpc.GetSignatureStatuses(ctx, false, sig)
		switch {
		case err != nil:
			d.logger.Debug("status lookup for %s failed: %v", sig, err)
		case len(out.Value) > 0 && out.Value[0] != nil:
			status := out.Value[0]
			if status.Err != nil {
				return errs.WithDetails(errs.Because(errs.ErrTxFailed, fmt.Errorf("%v", status.Err)),
					map[string]string{"tx": sig.String()})
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return errs.WithDetails(errs.Because(errs.ErrConfirmTimeout, ctx.Err()), map[string]string{"tx": sig.String()})
		case <-ticker.C:
		}
	}
}
