package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/liftedinit/propchain/internal/ledger"
	"github.com/liftedinit/propchain/internal/models"
	"github.com/liftedinit/propchain/internal/output"
)

type Options struct {
	// AutoMine mines after every successful mint, transfer or listing.
	AutoMine bool
	// MineRemaining mines whatever is left in the pool once the script ends.
	MineRemaining bool
	// FailFast stops at the first rejected operation.
	FailFast bool
	Progress bool
}

type Result struct {
	Applied int
	Failed  int
	Mined   []models.BlockSummary
}

// Runner applies operations to a ledger and mirrors each new block to an
// output handler.
type Runner struct {
	ledger *ledger.Ledger
	out    output.OutputHandler
	opts   Options
}

// NewRunner creates a runner. out may be nil.
func NewRunner(l *ledger.Ledger, out output.OutputHandler, opts Options) *Runner {
	return &Runner{ledger: l, out: out, opts: opts}
}

// Run applies ops in order. Rejected operations are logged and counted; they
// only abort the run when FailFast is set. Output and cancellation errors
// always abort.
func (r *Runner) Run(ctx context.Context, ops []Operation) (Result, error) {
	var res Result

	genesis := r.ledger.Chain()[0]
	if err := r.write(ctx, genesis); err != nil {
		return res, err
	}

	var bar *progressbar.ProgressBar
	if r.opts.Progress && len(ops) > 1 {
		bar = progressbar.NewOptions(
			len(ops),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Applying operations..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return res, fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	for _, op := range ops {
		if ctx.Err() != nil {
			slog.Info("Processing cancelled by user")
			return res, ctx.Err()
		}

		err := r.apply(ctx, op, &res)
		if err != nil {
			if !isRejection(err) {
				return res, fmt.Errorf("line %d: %w", op.Line, err)
			}
			res.Failed++
			slog.Warn("Operation rejected", "line", op.Line, "op", op.Op, "error", err)
			if r.opts.FailFast {
				return res, fmt.Errorf("line %d: %w", op.Line, err)
			}
		} else {
			res.Applied++
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return res, fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	if r.opts.MineRemaining && len(r.ledger.Pending()) > 0 {
		if err := r.mine(ctx, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *Runner) apply(ctx context.Context, op Operation, res *Result) error {
	var err error
	switch op.Op {
	case KindCreateWallet:
		err = r.ledger.CreateWallet(op.Owner)
	case KindMint:
		err = r.ledger.MintProperty(op.Owner, *op.PropertyID, op.Value, op.Location)
	case KindTransfer:
		err = r.ledger.TransferProperty(op.From, op.To, *op.PropertyID)
	case KindListForSale:
		err = r.ledger.ListPropertyForSale(op.Owner, *op.PropertyID)
	case KindMine:
		return r.mine(ctx, res)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	if err != nil {
		return err
	}

	if r.opts.AutoMine && op.Mutates() {
		return r.mine(ctx, res)
	}
	return nil
}

func (r *Runner) mine(ctx context.Context, res *Result) error {
	block, err := r.ledger.MinePending()
	if err != nil {
		return err
	}
	slog.Info("Block mined", "index", block.Index, "hash", block.Hash)
	res.Mined = append(res.Mined, block)
	return r.write(ctx, block)
}

func (r *Runner) write(ctx context.Context, summary models.BlockSummary) error {
	if r.out == nil {
		return nil
	}
	block, txs, err := output.FromSummary(summary)
	if err != nil {
		return err
	}
	if err := r.out.WriteBlockWithTransactions(ctx, block, txs); err != nil {
		return fmt.Errorf("failed to write block %d: %w", summary.Index, err)
	}
	return nil
}

// isRejection reports whether err is a ledger precondition failure.
func isRejection(err error) bool {
	for _, kind := range []error{
		ledger.ErrWalletAlreadyExists,
		ledger.ErrWalletNotFound,
		ledger.ErrPropertyNotFound,
		ledger.ErrDuplicatePropertyID,
		ledger.ErrEmptyTransactionPool,
		ledger.ErrInvalidOwner,
		ledger.ErrInvalidPropertyValue,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
