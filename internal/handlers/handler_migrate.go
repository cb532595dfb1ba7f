package handlers

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/SscSPs/fx_fee_engine/internal/platform/logging"
)

func registerMigrateCommands(r *Router, migrate MigrateFunc) {
	r.Handle("migrate", "", func(ctx context.Context, args []string, out io.Writer) error {
		if _, err := parseArgs(flag.NewFlagSet("migrate", flag.ContinueOnError), args, 0); err != nil {
			return err
		}

		applied, err := migrate(ctx)
		if err != nil {
			return err
		}
		if applied {
			logging.FromContext(ctx).Info("Database migrations applied successfully.")
			fmt.Fprintln(out, "Migrations applied.")
		} else {
			logging.FromContext(ctx).Info("No new migrations to apply.")
			fmt.Fprintln(out, "No new migrations to apply.")
		}
		return nil
	})
}
