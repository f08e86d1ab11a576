// Command taxreport generates a quarterly sales-tax report from paid
// Stripe invoices. The report itself goes to stdout (or -out); all
// progress and per-invoice diagnostics go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/castlemilk/stripe-tax-reporter/internal/billing"
	"github.com/castlemilk/stripe-tax-reporter/internal/config"
	"github.com/castlemilk/stripe-tax-reporter/internal/logger"
	"github.com/castlemilk/stripe-tax-reporter/internal/report"
)

const runTimeout = 15 * time.Minute

func main() {
	log := logger.New()

	cmd, args := "generate", os.Args[1:]
	if len(os.Args) > 1 {
		switch {
		case os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help":
			printUsage()
			return
		case !strings.HasPrefix(os.Args[1], "-"):
			// Bare flags run the default generate command.
			cmd = os.Args[1]
			args = os.Args[2:]
		}
	}

	switch cmd {
	case "generate":
		runGenerate(log, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Stripe Tax Reporter")
	fmt.Println("\nUsage:")
	fmt.Println("  taxreport [generate] [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate  Generate the tax report for the previous fiscal quarter (default)")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'taxreport generate -h' for generate options.")
}

func runGenerate(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	refDate := fs.String("ref-date", "", "reference date (YYYY-MM-DD) overriding today, for reproducible runs")
	format := fs.String("format", "tsv", "output format: tsv, xlsx or pdf")
	out := fs.String("out", "", "output file (default stdout; required for xlsx and pdf)")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ref := time.Now().UTC()
	if *refDate != "" {
		ref, err = time.ParseInLocation("2006-01-02", *refDate, time.UTC)
		if err != nil {
			log.Fatal().Str("ref_date", *refDate).Err(err).Msg("invalid -ref-date")
		}
	}

	quarter := report.PreviousQuarter(ref)
	log.Info().Str("quarter", quarter.String()).Msg("generating report")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	client := billing.NewClient(cfg.APIKey)
	gen := report.NewGenerator(client, log)

	rep, err := gen.Run(ctx, quarter)
	if err != nil {
		log.Fatal().Err(err).Msg("report generation failed")
	}

	if err := writeReport(rep, *format, *out); err != nil {
		log.Fatal().Err(err).Msg("writing report failed")
	}
}

func writeReport(rep *report.Report, format, out string) error {
	switch format {
	case "tsv":
		text := report.FormatTSV(rep.Records, rep.Totals)
		if out == "" {
			fmt.Print(text)
			return nil
		}
		return os.WriteFile(out, []byte(text), 0o644)
	case "xlsx", "pdf":
		if out == "" {
			return fmt.Errorf("-out is required for %s output", format)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if format == "xlsx" {
			return report.WriteXLSX(f, rep)
		}
		return report.WritePDF(f, rep)
	default:
		return fmt.Errorf("unknown format %q (want tsv, xlsx or pdf)", format)
	}
}
