package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle/schematic"
)

var showCmd = &cobra.Command{
	Use:   "show <schematic_file> <part>...",
	Short: "Show part attributes",
	Long: `Display attributes of parts in an EAGLE schematic.

With one part: shows every effective attribute and where the part is placed.
With several parts: shows the editable attributes, with the value shared by
all of them or empty where they differ.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	names := args[1:]
	for _, name := range names {
		if s.Schematic().Part(name) == nil {
			return fmt.Errorf("part %s not found", name)
		}
	}

	out := cmd.OutOrStdout()
	if len(names) == 1 {
		showPart(cmd, s.Schematic().Part(names[0]))
		return nil
	}

	fmt.Fprintf(out, "Parts: %d\n", len(names))
	for _, attr := range cfg.Editable {
		fmt.Fprintf(out, "  %s: %s\n", attr, s.CommonValue(names, attr))
	}
	return nil
}

func showPart(cmd *cobra.Command, p *schematic.Part) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Part: %s\n", p.Name)
	fmt.Fprintf(out, "  Library: %s\n", p.Device.DeviceSet.Library)
	fmt.Fprintf(out, "  DeviceSet: %s\n", p.Device.DeviceSet.Name)
	fmt.Fprintf(out, "  Device: %s\n", p.Device.Name)
	fmt.Fprintf(out, "  Sheets: %s\n", p.SheetsString())
	if !p.IncludeInBOM() {
		fmt.Fprintf(out, "  Excluded from BOM\n")
	}

	own := p.OwnAttributes()
	attrs := p.Attributes()
	fmt.Fprintf(out, "\nAttributes:\n")
	for _, k := range attrs.Keys() {
		marker := ""
		if _, ok := own[k]; ok {
			marker = " *"
		}
		fmt.Fprintf(out, "  %s: %s%s\n", k, attrs[k], marker)
	}
	fmt.Fprintf(out, "\n* set on the part\n")
}
