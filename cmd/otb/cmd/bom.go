package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/bom"
)

var (
	bomFormat string
	bomOutput string
)

var bomCmd = &cobra.Command{
	Use:   "bom <schematic_file>",
	Short: "Print or export the bill of materials",
	Long: `Print the bill of materials of an EAGLE schematic.

Parts whose effective EXCLUDE_FROM_BOM attribute is exactly "YES" are left
out. Rows are ordered by device set, device, value and sheets. Columns come
from the configuration file.

Formats:
  text       aligned columns (default)
  csv        comma separated values with a header row
  cyclonedx  CycloneDX 1.4 JSON (alias: cdx)
  arrow      Apache Arrow IPC stream, one utf8 column per BOM column

Examples:
  otb bom board.sch
  otb bom board.sch --format csv -o bom.csv
  otb bom board.sch --format arrow > bom.arrows`,
	Args: cobra.ExactArgs(1),
	RunE: runBom,
}

func init() {
	rootCmd.AddCommand(bomCmd)

	bomCmd.Flags().StringVarP(&bomFormat, "format", "f", "text",
		"output format (text, csv, cyclonedx, arrow)")
	bomCmd.Flags().StringVarP(&bomOutput, "output", "o", "-",
		"output file, - for stdout")
}

func runBom(cmd *cobra.Command, args []string) error {
	format, err := bom.ParseFormat(bomFormat)
	if err != nil {
		return err
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	table := bom.Build(s.Schematic().BOM(), cfg.Columns)

	var w io.Writer = cmd.OutOrStdout()
	if bomOutput != "-" && bomOutput != "" {
		file, err := os.Create(bomOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := table.Write(w, format, bom.CycloneDXOptions{ToolVersion: rootCmd.Version}); err != nil {
		return err
	}
	if verbose && bomOutput != "-" && bomOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d parts to %s\n", len(table.Rows), bomOutput)
	}
	return nil
}
