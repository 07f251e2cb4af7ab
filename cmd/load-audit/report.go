package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	"github.com/noah-isme/timetable-wizard-api/internal/service"
	"github.com/noah-isme/timetable-wizard-api/pkg/export"
)

// errViolations is returned with --strict when the audit finds a problem.
var errViolations = errors.New("load audit found violations")

type reportOptions struct {
	weeklyCap   int
	dailyCap    int
	days        int
	level       string
	format      string
	strict      bool
	showSkipped bool
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "load-audit",
		Short:         "Audit weekly teaching load reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.AddCommand(newReportCmd(stdin))
	return root
}

func newReportCmd(stdin io.Reader) *cobra.Command {
	opts := reportOptions{}
	def := service.DefaultAuditPolicy()

	cmd := &cobra.Command{
		Use:   "report <file|->",
		Short: "Check class weekly totals and teacher/class daily spreads",
		Long: "Reads a ';' separated load report (teacherId;branch;level;subject;class;weeklyHours[;distribution]) " +
			"from a file, or stdin when the argument is '-', and prints the audit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := service.NewAuditPolicy(opts.weeklyCap, opts.dailyCap, opts.days, opts.level)
			if err != nil {
				return err
			}

			in := stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open load report: %w", err)
				}
				defer f.Close()
				in = f
			}

			parsed, err := service.ParseLoadReport(in)
			if err != nil {
				return err
			}
			report := service.Audit(parsed, policy)
			if err := render(cmd.OutOrStdout(), report, policy, opts); err != nil {
				return err
			}
			if opts.strict && hasViolations(report) {
				return errViolations
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.weeklyCap, "weekly-cap", def.WeeklyCap, "lessons a class must have per week")
	flags.IntVar(&opts.dailyCap, "daily-cap", def.DailyCap, "lessons a teacher may give one class per day")
	flags.IntVar(&opts.days, "days", def.SchoolDays, "school days per week")
	flags.StringVar(&opts.level, "level", string(def.AuditedLevel), "level checked for teacher/class spreads")
	flags.StringVar(&opts.format, "format", "text", "output format: text or csv")
	flags.BoolVar(&opts.strict, "strict", false, "exit non-zero when any class or pair is out of bounds")
	flags.BoolVar(&opts.showSkipped, "show-skipped", false, "list skipped rows with their line numbers")
	return cmd
}

func render(w io.Writer, report models.LoadAuditReport, policy service.AuditPolicy, opts reportOptions) error {
	switch opts.format {
	case "text":
		if err := service.WriteAuditText(w, report); err != nil {
			return err
		}
	case "csv":
		body, err := export.NewCSVExporter(';').Render(service.AuditDataset(report, policy))
		if err != nil {
			return err
		}
		if _, err := w.Write(body); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	if opts.showSkipped {
		for _, skipped := range report.Skipped {
			fmt.Fprintf(w, "skipped line %d: %s\n", skipped.Line, skipped.Reason)
		}
	}
	return nil
}

func hasViolations(report models.LoadAuditReport) bool {
	for _, entry := range report.Classes {
		if entry.Status != models.LoadStatusOK {
			return true
		}
	}
	for _, entry := range report.Feasibility {
		if entry.Status == models.LoadStatusImpossible {
			return true
		}
	}
	return false
}
