package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"retailbrain/analytics"
	"retailbrain/config"
	"retailbrain/copilot"
	"retailbrain/forecasting"
	"retailbrain/gemini"
	"retailbrain/ingest"
	"retailbrain/logger"
	"retailbrain/models"
)

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "retailctl",
		Short:        "Sales analytics, demand forecasts and copilot context from a CSV file",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "CSV file with date, product, sales, price, stock columns")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newForecastCmd(opts),
		newDashboardCmd(opts),
		newContextCmd(opts),
		newAskCmd(opts),
	)
	return root
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	var product string
	opts := forecasting.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast demand and reorder guidance for one product",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(root.file)
			if err != nil {
				return err
			}
			result, err := forecasting.Forecast(ds, product, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&product, "product", "p", "", "product name")
	cmd.Flags().IntVar(&opts.HorizonDays, "days", opts.HorizonDays, "forecast horizon in days (1-90)")
	cmd.Flags().IntVar(&opts.LeadTimeDays, "lead-time", opts.LeadTimeDays, "supplier lead time in days (1-90)")
	cmd.Flags().Float64Var(&opts.ServiceLevel, "service-level", opts.ServiceLevel, "target service level (0.80-0.99)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func newDashboardCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(root.file)
			if err != nil {
				return err
			}
			result, err := analytics.Dashboard(ds)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newContextCmd(root *rootOptions) *cobra.Command {
	var query string
	budget := copilot.DefaultBudget()
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the budgeted retrieval context for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(root.file)
			if err != nil {
				return err
			}
			payload, rows := copilot.RetrieveContext(ds, query, budget)
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			fmt.Fprintf(cmd.ErrOrStderr(), "rows included: %d, bytes: %d\n", rows, len(payload))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text question")
	cmd.Flags().IntVar(&budget.ByteBudget, "budget", budget.ByteBudget, "payload size budget in bytes")
	cmd.Flags().IntVar(&budget.RowFloor, "floor", budget.RowFloor, "minimum rows kept when shrinking")
	cmd.Flags().IntVar(&budget.RowCeiling, "ceiling", budget.RowCeiling, "maximum rows retrieved")
	return cmd
}

func newAskCmd(root *rootOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the copilot a question (uses GEMINI_API_KEY when set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(logger.Config{Level: root.logLevel, Pretty: true}, cmd.ErrOrStderr())

			ds, err := loadDataset(root.file)
			if err != nil {
				return err
			}

			var generator copilot.Generator
			if cfg.GeminiAPIKey != "" {
				g, err := gemini.New(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
				if err != nil {
					log.Warn().Err(err).Msg("Gemini unavailable")
				} else {
					defer g.Close()
					generator = g
				}
			}

			budget := copilot.Budget{
				ByteBudget: cfg.ContextByteBudget,
				RowFloor:   cfg.ContextRowFloor,
				RowCeiling: cfg.ContextRowCeiling,
			}
			resp := copilot.New(generator, budget, cfg.GenerationTimeout, log).Chat(cmd.Context(), ds, query)
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text question")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func loadDataset(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ingest.ParseCSV(f)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
