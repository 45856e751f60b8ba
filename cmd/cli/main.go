package main

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yurifrl/rateio/pkg/config"
	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/render"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "rateio-cli",
	Short: "Rateio command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

// loaderFor resolves and validates the configuration. A missing CSV URL
// stops the command before anything is fetched.
func loaderFor(cmd *cobra.Command) (*Loader, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewLoader(cfg), nil
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := cliFilters.toFilters()
		if err != nil {
			return err
		}
		loader, err := loaderFor(cmd)
		if err != nil {
			return err
		}
		snap, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}

		view := snap.View(f)
		collapse := snap.Collapse()
		if expand, _ := cmd.Flags().GetBool("expand-all"); expand {
			collapse = dashboard.CollapseState{}
		}
		if toggleAll, _ := cmd.Flags().GetBool("toggle-all"); toggleAll {
			collapse = collapse.ToggleAll(view.ByYear)
		}
		years, _ := cmd.Flags().GetIntSlice("toggle")
		for _, y := range years {
			collapse.Toggle(y)
		}

		return render.Dashboard(cmd.OutOrStdout(), view, collapse)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered history as CSV to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := cliFilters.toFilters()
		if err != nil {
			return err
		}
		loader, err := loaderFor(cmd)
		if err != nil {
			return err
		}
		snap, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}
		return exportHistory(cmd.OutOrStdout(), snap.Records, f)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the derived dashboard view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "yaml" && format != "pp" {
			return fmt.Errorf("unknown format %q: must be yaml or pp", format)
		}
		f, err := cliFilters.toFilters()
		if err != nil {
			return err
		}
		loader, err := loaderFor(cmd)
		if err != nil {
			return err
		}
		snap, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}

		view := snap.View(f)
		if format == "pp" {
			printer := pp.New()
			printer.SetOutput(cmd.OutOrStdout())
			_, err := printer.Println(view)
			return err
		}
		out, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("failed to marshal view: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the CSV and list the rows that needed a fallback",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loader, err := loaderFor(cmd)
		if err != nil {
			return err
		}
		snap, err := loader.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d records, current period %q\n", len(snap.Records), snap.Current)
		if len(snap.Diagnostics) == 0 {
			fmt.Fprintln(out, "no issues")
			return nil
		}
		for _, issue := range snap.Diagnostics {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is rateio.yaml)")
	config.Flags(rootCmd.PersistentFlags())

	// Filter flags (global)
	rootCmd.PersistentFlags().StringVar(&cliFilters.participant, "pessoa", "", "Filter by participant (default all)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.status, "status", "", "Filter by status: Todos, Pago or Pendente")

	showCmd.Flags().Bool("expand-all", false, "Expand every year of the history")
	showCmd.Flags().Bool("toggle-all", false, "Collapse every year, or expand them all when all are collapsed")
	showCmd.Flags().IntSlice("toggle", nil, "Toggle the given years")

	dumpCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or pp")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
