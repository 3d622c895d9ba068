package output

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/liftedinit/propchain/internal/models"
)

// MultiOutputHandler writes each block to several handlers concurrently.
type MultiOutputHandler struct {
	handlers []OutputHandler
}

func NewMultiOutputHandler(handlers ...OutputHandler) *MultiOutputHandler {
	return &MultiOutputHandler{handlers: handlers}
}

func (h *MultiOutputHandler) WriteBlockWithTransactions(ctx context.Context, block *models.Block, transactions []*models.Transaction) error {
	eg, ctx := errgroup.WithContext(ctx)
	for i, handler := range h.handlers {
		eg.Go(func() error {
			if err := handler.WriteBlockWithTransactions(ctx, block, transactions); err != nil {
				return fmt.Errorf("output %d: %w", i, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Close closes every handler and returns all close errors joined.
func (h *MultiOutputHandler) Close() error {
	var errs []error
	for _, handler := range h.handlers {
		if err := handler.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
