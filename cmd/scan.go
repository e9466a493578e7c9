package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wyng-health/billaudit/internal/engine"
	"github.com/wyng-health/billaudit/internal/model"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the detection catalog against a priced summary",
	Long: `Reads a priced bill/EOB summary (JSON) and runs every rule in the
detection catalog against it.

Examples:
  # Scan a case file and print a table
  billaudit scan --input case.json

  # Emit detections as JSON for the report builder
  billaudit scan --input case.json --format json --output detections.json`,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.String("input", "", "path to priced summary JSON (use - for stdin)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or json")
	_ = scanCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	summary, err := readSummary(input)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.Engine, nil)
	if err != nil {
		return err
	}

	detections, err := eng.Run(cmd.Context(), summary)
	if err != nil {
		return eris.Wrap(err, "scan")
	}

	zap.L().Info("scan complete",
		zap.String("case_id", summary.CaseID),
		zap.Int("lines", len(summary.Lines)),
		zap.Int("detections", len(detections)),
	)

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrap(err, "scan: create output file")
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(detections), "scan: encode output")
	case "table":
		formatDetections(out, detections)
		return nil
	default:
		return eris.Errorf("scan: unknown format %q", format)
	}
}

func readSummary(path string) (*model.PricedSummary, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "scan: open input")
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	var summary model.PricedSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return nil, eris.Wrap(err, "scan: decode priced summary")
	}
	return &summary, nil
}

func formatDetections(w io.Writer, detections []model.Detection) {
	if len(detections) == 0 {
		fmt.Fprintln(w, "No findings.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tRULE\tLINES\tEXPLANATION")
	for _, d := range detections {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			strings.ToUpper(string(d.Severity)),
			d.RuleKey,
			refsString(d.Evidence),
			d.Explanation,
		)
	}
	tw.Flush() //nolint:errcheck
}

func refsString(e model.Evidence) string {
	if e == nil {
		return ""
	}
	refs := e.Refs()
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}
