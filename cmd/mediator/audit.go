package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"synm-hq/mediator/pkg/audit"
	"synm-hq/mediator/pkg/audit/export"
	"synm-hq/mediator/pkg/cli"
	"synm-hq/mediator/pkg/config"
)

var auditFlags struct {
	window time.Duration
	format string
	out    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit chain",
	Long: `Inspect the tamper-evident audit chain.

Subcommands:
  verify - Recompute the full hash chain and report the first bad record
  export - Write a trailing window of events as JSON or CSV

Examples:
  # Verify chain integrity
  mediator audit verify

  # Export the last 24 hours as CSV
  mediator audit export --window 24h --format csv --out audit.csv`,
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify audit chain integrity",
	RunE:  runAuditVerify,
}

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit events",
	RunE:  runAuditExport,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditExportCmd)

	auditExportCmd.Flags().DurationVar(&auditFlags.window, "window", 24*time.Hour, "trailing window to export")
	auditExportCmd.Flags().StringVar(&auditFlags.format, "format", "json", "export format (json, csv)")
	auditExportCmd.Flags().StringVar(&auditFlags.out, "out", "", "output file (default stdout)")
}

func openChain() (*audit.Chain, func() error, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, cli.NewConfigError("", err.Error())
	}

	store, err := openAuditStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	return audit.NewChain(store), store.Close, nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	chain, closeStore, err := openChain()
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := chain.VerifyIntegrity(cmd.Context())
	if err != nil {
		return cli.NewCommandError("audit verify", err)
	}

	if !report.Valid {
		fmt.Printf("chain INVALID at seq %d: %s (%d records)\n",
			report.BadSeq, report.Reason, report.Records)
		os.Exit(1)
	}

	fmt.Printf("chain valid (%d records)\n", report.Records)
	return nil
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	if auditFlags.format != "json" && auditFlags.format != "csv" {
		return cli.NewCommandError("audit export",
			fmt.Errorf("format must be json or csv, got %q", auditFlags.format))
	}

	chain, closeStore, err := openChain()
	if err != nil {
		return err
	}
	defer closeStore()

	events, err := chain.EventsSince(cmd.Context(), auditFlags.window)
	if err != nil {
		return cli.NewCommandError("audit export", err)
	}

	out := os.Stdout
	if auditFlags.out != "" {
		f, err := os.Create(auditFlags.out)
		if err != nil {
			return cli.NewCommandError("audit export", err)
		}
		defer f.Close()
		out = f
	}

	if auditFlags.format == "csv" {
		err = export.NewCSVExporter(true).Export(cmd.Context(), events, out)
	} else {
		err = export.NewJSONExporter(true).Export(cmd.Context(), events, out)
	}
	if err != nil {
		return cli.NewCommandError("audit export", err)
	}

	fmt.Fprintf(os.Stderr, "exported %d events\n", len(events))
	return nil
}
