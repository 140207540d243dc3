package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	setParts  []string
	setAttrs  []string
	setOutput string
	setForce  bool
)

var setCmd = &cobra.Command{
	Use:   "set <schematic_file>",
	Short: "Set attributes on parts",
	Long: `Set one or more attributes on one or more parts and save the result.

Each change is written to the schematic and mirrored to the board element of
the same name. An override equal to the value the part's device already
provides is removed instead of written.

By default the schematic is saved in place, which requires --force.

Examples:
  otb set board.sch -p R1 -a MPN=RC0603FR-0710KL --force
  otb set board.sch -p R1 -p R2 -a MANUFACTURER=Yageo -a OC_FARNELL=9238603 -o new.sch`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringArrayVarP(&setParts, "part", "p", nil, "part to edit (repeatable)")
	setCmd.Flags().StringArrayVarP(&setAttrs, "attr", "a", nil, "NAME=VALUE to set (repeatable)")
	setCmd.Flags().StringVarP(&setOutput, "output", "o", "", "output schematic (default: in place)")
	setCmd.Flags().BoolVar(&setForce, "force", false, "overwrite existing files")

	setCmd.MarkFlagRequired("part")
	setCmd.MarkFlagRequired("attr")
}

// parseAssignment splits NAME=VALUE. The value may be empty or contain "=".
func parseAssignment(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid attribute %q, want NAME=VALUE", s)
	}
	return name, value, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	type assignment struct{ name, value string }
	assignments := make([]assignment, 0, len(setAttrs))
	for _, a := range setAttrs {
		name, value, err := parseAssignment(a)
		if err != nil {
			return err
		}
		assignments = append(assignments, assignment{name, value})
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}

	for _, a := range assignments {
		if err := s.SetAttribute(setParts, a.name, a.value); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %q\n", strings.Join(setParts, ", "), a.name, a.value)
		}
	}

	return saveSession(cmd, s, setOutput, setForce)
}
