package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <schematic_file>",
	Short: "Show a schematic summary",
	Long: `Display a summary of an EAGLE schematic and its board: libraries,
part counts, sheets and the components grouped by reference prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	sch := s.Schematic()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Schematic: %s\n", s.Path())
	if s.Board().IsEmpty() {
		fmt.Fprintf(out, "Board: none\n")
	} else {
		fmt.Fprintf(out, "Board: %s\n", s.BoardPath())
	}
	fmt.Fprintln(out)

	sheets := 0
	for _, p := range sch.Parts {
		if ps := p.Sheets(); len(ps) > 0 && ps[len(ps)-1] > sheets {
			sheets = ps[len(ps)-1]
		}
	}

	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Device sets: %d\n", len(sch.DeviceSets))
	fmt.Fprintf(out, "  Parts: %d\n", len(sch.Parts))
	fmt.Fprintf(out, "  BOM parts: %d\n", len(sch.BOM()))
	fmt.Fprintf(out, "  Sheets: %d\n", sheets)
	fmt.Fprintf(out, "  Board elements: %d\n", len(s.Board().Elements))
	fmt.Fprintln(out)

	byLibrary := make(map[string]int)
	for _, ds := range sch.DeviceSets {
		byLibrary[ds.Library]++
	}
	if len(byLibrary) > 0 {
		fmt.Fprintln(out, "Libraries:")
		for _, lib := range sortedKeys(byLibrary) {
			fmt.Fprintf(out, "  %s: %d device sets\n", lib, byLibrary[lib])
		}
		fmt.Fprintln(out)
	}

	// Group by reference prefix
	byPrefix := make(map[string][]string)
	for name := range sch.Parts {
		prefix := refPrefix(name)
		byPrefix[prefix] = append(byPrefix[prefix], name)
	}
	if len(byPrefix) > 0 {
		fmt.Fprintln(out, "Components:")
		for _, prefix := range sortedKeys(byPrefix) {
			refs := byPrefix[prefix]
			sort.Strings(refs)
			fmt.Fprintf(out, "  %s: %s\n", prefix, strings.Join(refs, ", "))
		}
	}

	for _, w := range s.Warnings() {
		fmt.Fprintf(out, "\nWarning: %v\n", w)
	}
	return nil
}

// refPrefix returns the leading non-digit part of a reference designator.
func refPrefix(ref string) string {
	i := strings.IndexAny(ref, "0123456789")
	if i <= 0 {
		return ref
	}
	return ref[:i]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
