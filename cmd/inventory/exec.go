package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	commandsvc "github.com/mamadbah2/inventory/internal/service/commands"
	reportingsvc "github.com/mamadbah2/inventory/internal/service/reporting"
)

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "exec COMMAND...",
		Short:   "Run one text command (add, remove, qty, low, report) against the saved inventory",
		Example: "  inventory exec add apple 10\n  inventory exec low 3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := a.store.Load(ctx, a.repo); err != nil {
				return err
			}

			reportingSvc := reportingsvc.NewService(a.store, nil, a.logger.Named("svc.reporting"))
			dispatcher := commandsvc.NewService(a.store, a.repo, reportingSvc, a.cfg.Inventory.LowStockThreshold, a.logger.Named("svc.commands"))

			parsed := models.ParseCommand(strings.Join(args, " "))
			reply, err := dispatcher.HandleCommand(ctx, parsed)
			if err != nil {
				a.logger.Warn("command failed", zap.String("command", parsed.Raw), zap.Error(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)

			switch parsed.Type {
			case models.CommandAdd, models.CommandRemove:
				return a.store.Save(ctx, a.repo)
			}
			return nil
		},
	}
}
