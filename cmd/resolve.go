package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"devserve/core/logger"
	"devserve/feature/content"

	"github.com/spf13/cobra"
)

// resolution is one line of the resolve report.
type resolution struct {
	Request string `json:"request"`
	Status  int    `json:"status"`
	Outcome string `json:"outcome"`
	File    string `json:"file"`
	Error   string `json:"error,omitempty"`
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Show which root answers a request path",
	Long: `Resolves request paths the way the server would, including the
fallback page, and prints the status and file that would be served.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		roots, err := openRoots(ctx, cfg, logg)
		if err != nil {
			return err
		}
		service := content.NewService(roots, cfg.Content, logg)

		report := make([]resolution, 0, len(args))
		for _, arg := range args {
			lookup := service.Lookup(ctx, content.DecodePath(arg))
			r := resolution{
				Request: arg,
				Status:  lookup.Outcome.Status(),
				Outcome: lookup.Outcome.String(),
				File:    lookup.Path,
			}
			if lookup.Outcome == content.Failed {
				r.Error = lookup.Err.Error()
			}
			report = append(report, r)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "REQUEST\tSTATUS\tOUTCOME\tFILE")
		for _, r := range report {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Request, r.Status, r.Outcome, r.File)
		}
		return tw.Flush()
	},
}

func init() {
	resolveCmd.Flags().Bool("json", false, "print the report as JSON")
	addContentFlags(resolveCmd.Flags())

	RootCmd.AddCommand(resolveCmd)
}
