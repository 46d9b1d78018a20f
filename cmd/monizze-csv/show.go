package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ybnd/monizze-csv/internal/adapter/repository/csvfile"
	"github.com/ybnd/monizze-csv/internal/domain"
)

func newShowCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show per-voucher totals and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, last)
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 10, "Number of recent transactions to list")

	return cmd
}

func runShow(cmd *cobra.Command, last int) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	store := csvfile.NewStore(cfg.RecordPath)
	rows, err := store.ReadRows(cmd.Context())
	if errors.Is(err, domain.ErrRecordNotFound) {
		fmt.Printf("No record at %s yet; run sync first.\n", cfg.RecordPath)
		return nil
	}
	if err != nil {
		return err
	}

	history := make([]domain.Transaction, 0, len(rows))
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, row := range rows {
		tx, err := domain.ParseRow(row)
		if err != nil {
			return err
		}
		history = append(history, tx)
		totals[tx.Voucher] = totals[tx.Voucher].Add(tx.Amount)
		counts[tx.Voucher]++
	}

	vouchers := make([]string, 0, len(totals))
	for voucher := range totals {
		vouchers = append(vouchers, voucher)
	}
	sort.Strings(vouchers)

	summary := table.NewWriter()
	summary.SetOutputMirror(os.Stdout)
	summary.SetStyle(table.StyleLight)
	summary.AppendHeader(table.Row{"Voucher", "Transactions", "Total"})
	for _, voucher := range vouchers {
		summary.AppendRow(table.Row{cfg.Label(voucher), counts[voucher], totals[voucher].StringFixed(2)})
	}
	summary.Render()

	if last <= 0 || len(history) == 0 {
		return nil
	}

	start := len(history) - last
	if start < 0 {
		start = 0
	}

	fmt.Println()
	recent := table.NewWriter()
	recent.SetOutputMirror(os.Stdout)
	recent.SetStyle(table.StyleLight)
	recent.AppendHeader(table.Row{"Date", "Voucher", "Amount", "Detail"})
	for _, tx := range history[start:] {
		recent.AppendRow(table.Row{tx.Date, cfg.Label(tx.Voucher), tx.Amount.StringFixed(2), tx.Detail})
	}
	recent.Render()

	return nil
}
