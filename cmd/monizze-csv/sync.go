package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/ybnd/monizze-csv/internal/adapter/repository/csvfile"
	"github.com/ybnd/monizze-csv/internal/adapter/source"
	"github.com/ybnd/monizze-csv/internal/adapter/source/jsonfile"
	"github.com/ybnd/monizze-csv/internal/infrastructure/config"
	"github.com/ybnd/monizze-csv/internal/usecase"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <response file>...",
		Short: "Merge captured history responses into the CSV record",
		Long: `Reads captured /voucher/history response files in the order given, one
page per file, and merges the retrieved transactions into the record.
Rows older than the oldest retrieved transaction are preserved; the
rest of the record is replaced by the fresh data.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log = log.With().Str("run", ulid.Make().String()).Logger()

	store := csvfile.NewStore(cfg.RecordPath)
	merger := usecase.NewHistoryMerger(store, log)
	src := source.WithRetry(jsonfile.New(args), cfg.FetchRetries, cfg.FetchRetryInterval, log)
	sync := usecase.NewSyncUseCase(src, merger, cfg.ExcludePatterns(), log)

	report, err := sync.Run(cmd.Context())
	if err != nil {
		return err
	}

	if report.Skipped {
		fmt.Println("No transactions retrieved; record left untouched.")
		return nil
	}

	printSyncSummary(report, cfg)
	return nil
}

func printSyncSummary(report *usecase.SyncReport, cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Voucher", "Fresh"})

	vouchers := make([]string, 0, len(report.PerVoucher))
	for voucher := range report.PerVoucher {
		vouchers = append(vouchers, voucher)
	}
	sort.Strings(vouchers)
	for _, voucher := range vouchers {
		t.AppendRow(table.Row{cfg.Label(voucher), report.PerVoucher[voucher]})
	}
	t.AppendFooter(table.Row{"Total", report.Fresh})
	t.Render()

	fmt.Printf("\nPages: %d  Preserved: %d  Fresh: %d  Written: %d",
		report.Pages, report.Preserved, report.Fresh, report.Written)
	if report.Excluded > 0 {
		fmt.Printf("  Excluded: %d", report.Excluded)
	}
	fmt.Printf("\nRecord: %s\n", cfg.RecordPath)
}
