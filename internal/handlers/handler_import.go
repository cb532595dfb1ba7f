package handlers

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/fx_fee_engine/internal/adapters/csvfile"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/core/ports"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/dto"
	"github.com/SscSPs/fx_fee_engine/internal/platform/config"
	"github.com/SscSPs/fx_fee_engine/internal/platform/logging"
)

// importHandler handles the import-csv command.
type importHandler struct {
	importService portssvc.ImportSvc
	defaultPath   string
}

func newImportHandler(svc portssvc.ImportSvc, defaultPath string) *importHandler {
	return &importHandler{
		importService: svc,
		defaultPath:   defaultPath,
	}
}

func registerImportCommands(r *Router, cfg *config.Config, svc portssvc.ImportSvc) {
	h := newImportHandler(svc, cfg.ImportPath)
	r.Handle("import-csv", "[--path DIR] [--dry-run] [--reset]", h.importCSV)
}

func (h *importHandler) importCSV(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import-csv", flag.ContinueOnError)
	var req dto.ImportRequest
	fs.StringVar(&req.Path, "path", h.defaultPath, "folder containing clients.csv, rates.csv and transactions.csv")
	fs.BoolVar(&req.DryRun, "dry-run", false, "validate and check references without writing")
	fs.BoolVar(&req.Reset, "reset", false, "truncate tables before import")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}
	req.Path = strings.TrimRight(req.Path, "/")

	logger := logging.FromContext(ctx)
	logger.Info("Received request to import CSV files",
		slog.String("path", req.Path),
		slog.Bool("dry_run", req.DryRun),
		slog.Bool("reset", req.Reset))

	fmt.Fprintf(out, "Import path: %s\n", req.Path)
	if req.DryRun {
		fmt.Fprintln(out, "Mode: DRY RUN (no DB writes, in-memory reference checks)")
	} else {
		fmt.Fprintln(out, "Mode: WRITE")
	}
	if req.Reset {
		if req.DryRun {
			fmt.Fprintln(out, "Reset: SKIPPED (dry-run)")
		} else {
			fmt.Fprintln(out, "Reset: YES (truncate tables first)")
		}
	}

	report, err := h.importService.Import(ctx, csvfile.NewDirectorySource(req.Path), req)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Done.")
	writeStats(out, ports.SectionClients, report.Clients)
	writeStats(out, ports.SectionRates, report.Rates)
	writeStats(out, ports.SectionTransactions, report.Transactions)
	return nil
}

func writeStats(out io.Writer, section string, s domain.SectionStats) {
	fmt.Fprintf(out, "%s: processed=%d created=%d updated=%d warnings=%d errors=%d\n",
		section, s.Processed, s.Created, s.Updated, s.Warnings, s.Errors)
}
