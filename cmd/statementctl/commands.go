package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/auth"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/commission"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/export"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/settlement"
	"github.com/Julianb233/daily-event-insurance-sub010/pkg/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statementctl",
		Short:         "Render and check partner settlement statements",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newCheckCmd(), newNumberCmd(), newTierCmd(), newHashPasswordCmd())
	return root
}

type renderOptions struct {
	input     string
	partnerID string
	start     string
	end       string
	format    string
	out       string
}

func newRenderCmd() *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a statement from a YAML file or the bundled fixtures",
		Long: `Renders a settlement statement as html, csv, xlsx or pdf.

Use --input to render a statement document (YAML, same field names as the API),
or --partner with --start/--end to assemble one from the bundled fixture data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "statement YAML file")
	f.StringVar(&o.partnerID, "partner", "", "partner id in the fixture data")
	f.StringVar(&o.start, "start", "", "period start (YYYY-MM-DD)")
	f.StringVar(&o.end, "end", "", "period end (YYYY-MM-DD)")
	f.StringVarP(&o.format, "format", "f", "html", "html, csv, xlsx or pdf")
	f.StringVarP(&o.out, "out", "o", "", `output path; "-" for stdout, directory or empty for statement-<number>.<ext>`)
	cmd.MarkFlagsMutuallyExclusive("input", "partner")
	cmd.MarkFlagsOneRequired("input", "partner")
	return cmd
}

func runRender(ctx context.Context, stdout, stderr io.Writer, o renderOptions) error {
	format, err := settlement.ParseFormat(o.format)
	if err != nil {
		return err
	}

	var data settlement.StatementData
	if o.input != "" {
		data, err = readStatement(o.input)
	} else {
		data, err = buildFromFixtures(ctx, o.partnerID, o.start, o.end)
	}
	if err != nil {
		return err
	}

	log := logger.NewWithWriter("local", stderr)
	for _, d := range settlement.Reconcile(data) {
		log.Warn("statement summary disagrees with line items",
			"statement_number", data.StatementNumber, "field", d.Field,
			"supplied", d.Supplied, "derived", d.Derived)
	}

	body, err := settlement.Render(data, format)
	if err != nil {
		return err
	}

	if o.out == "-" {
		_, err = stdout.Write(body)
		return err
	}
	path := o.out
	name := format.Filename(data.StatementNumber)
	if path == "" {
		path = name
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, name)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintln(stdout, path)
	return nil
}

// readStatement decodes a statement document and fills in a number when it has none.
func readStatement(path string) (settlement.StatementData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return settlement.StatementData{}, err
	}
	var data settlement.StatementData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return settlement.StatementData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if data.StatementNumber == "" {
		data.StatementNumber = settlement.GenerateStatementNumber()
	}
	if data.StatementDate.IsZero() {
		data.StatementDate = time.Now().UTC()
	}
	return data, nil
}

func buildFromFixtures(ctx context.Context, partnerID, rawStart, rawEnd string) (settlement.StatementData, error) {
	start, err := export.ParseDate(rawStart)
	if err != nil {
		return settlement.StatementData{}, fmt.Errorf("--start: %w", err)
	}
	end, err := export.ParseDate(rawEnd)
	if err != nil {
		return settlement.StatementData{}, fmt.Errorf("--end: %w", err)
	}
	src, err := datasource.NewFixtureSource()
	if err != nil {
		return settlement.StatementData{}, err
	}
	tiers := commission.NewService(commission.NewMemoryRepo())
	return settlement.NewService(src, settlement.WithTierResolver(tiers)).Build(ctx, partnerID, start, end)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <statement.yaml>",
		Short: "Report summary figures that disagree with the line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readStatement(args[0])
			if err != nil {
				return err
			}
			ds := settlement.Reconcile(data)
			for _, d := range ds {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			if len(ds) > 0 {
				return fmt.Errorf("%d discrepancies", len(ds))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newNumberCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "number",
		Short: "Print fresh statement numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := settlement.NewNumberGenerator(nil, nil)
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), g.Next())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many numbers to print")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newTierCmd() *cobra.Command {
	var (
		volume  int
		premium float64
		count   int
	)
	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Show the commission tier for a monthly participant volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := commission.NewService(commission.NewMemoryRepo())
			p, err := svc.Progress(cmd.Context(), volume)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tier: %s (%s%%)\n", p.Current.Name, export.FormatRate(p.Current.Rate))
			if p.Next != nil {
				fmt.Fprintf(out, "next: %s in %d participants (+%s%%)\n",
					p.Next.Name, p.VolumeToNext, export.FormatRate(p.RateIncrease))
			}
			if premium > 0 {
				c := commission.Calculate(premium, p.Current, count)
				fmt.Fprintf(out, "commission: %s + bonus %s = %s\n",
					export.FormatCurrency(c.Amount), export.FormatCurrency(c.FlatBonus), export.FormatCurrency(c.Total))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&volume, "volume", 0, "monthly participant volume")
	f.Float64Var(&premium, "premium", 0, "premium to compute commission on")
	f.IntVar(&count, "policies", 1, "policy count for the flat bonus")
	return cmd
}
