// Package demo runs the fixed walkthrough executed by the inventory command
// when it is started without a subcommand.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mamadbah2/inventory/internal/inventory"
	"github.com/mamadbah2/inventory/internal/service/reporting"
)

// Run adds two items, removes from one present and one absent item, prints
// a quantity and the low-stock list, saves, reloads and prints the report.
// Anticipated store failures are only diagnostics; repository errors abort.
func Run(ctx context.Context, store *inventory.Store, repo inventory.Repository, out io.Writer) error {
	var journal inventory.Journal

	steps := []func() error{
		func() error { return store.Add("apple", 10, &journal) },
		func() error { return store.Add("banana", 2, &journal) },
		func() error { return store.Remove("apple", 3) },
		func() error { return store.Remove("orange", 1) },
	}
	for _, step := range steps {
		if err := step(); err != nil && !isAnticipated(err) {
			return err
		}
	}

	fmt.Fprintf(out, "Apple stock: %d\n", store.Quantity("apple"))
	fmt.Fprintf(out, "Low items: %v\n", store.LowItems(inventory.DefaultLowThreshold))

	if err := store.Save(ctx, repo); err != nil {
		return err
	}
	if err := store.Load(ctx, repo); err != nil {
		return err
	}

	return reporting.WriteReport(out, store.Items())
}

func isAnticipated(err error) bool {
	return errors.Is(err, inventory.ErrInvalidType) ||
		errors.Is(err, inventory.ErrMissingItem) ||
		errors.Is(err, inventory.ErrNonNumericQuantity)
}
