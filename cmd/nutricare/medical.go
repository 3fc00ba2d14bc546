package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/nutricare-client/internal/api"
)

func reportsCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List medical reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := a.api.Medical.Reports(cmd.Context())
			return printResult(a, reports, err)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.api.Medical.Report(cmd.Context(), args[0])
			return printResult(a, rep, err)
		},
	}

	var reportType string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a report image or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}
			defer f.Close()

			out, err := a.api.Medical.UploadReport(cmd.Context(), api.Upload{
				Filename:   f.Name(),
				Content:    f,
				ReportType: reportType,
			})
			return printResult(a, out, err)
		},
	}
	upload.Flags().StringVarP(&reportType, "type", "t", "other", "one of: "+strings.Join(api.ReportTypes, ", "))

	analyze := &cobra.Command{
		Use:   "analyze <id>",
		Short: "Run analysis of an uploaded report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.api.Medical.AnalyzeReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out.AlreadyAnalyzed() {
				fmt.Fprintln(cmd.ErrOrStderr(), out.Message)
				return nil
			}

			return a.out.print(out.MedicalReport)
		},
	}

	return group("reports", "Medical reports", list, get, upload, analyze)
}

func diseasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diseases",
		Short: "List known diseases and their dietary guidance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diseases, err := a.api.Medical.Diseases(cmd.Context())
			return printResult(a, diseases, err)
		},
	}
}
