package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/editscript"
)

var (
	applyOutput string
	applyForce  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <schematic_file> <script_file>",
	Short: "Apply an edit script",
	Long: `Apply a batch of attribute edits from a script and save the result.

A script is a list of blocks. Each block names its target parts, or * for
every part in the BOM, and the attributes to set:

  # comment
  R1, R2 {
      MANUFACTURER = "Yageo"
      MPN = "RC0603FR-0710KL";
  }
  * { OC_DIGIKEY = "" }

All edits are checked before any is applied. By default the schematic is saved
in place, which requires --force.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "output schematic (default: in place)")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "overwrite existing files")
}

func runApply(cmd *cobra.Command, args []string) error {
	parser, err := editscript.NewParser()
	if err != nil {
		return err
	}
	script, err := parser.ParseFile(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(args[0])
	if err != nil {
		return err
	}
	if err := s.Apply(script); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d edits\n", len(script.Edits()))
	}

	return saveSession(cmd, s, applyOutput, applyForce)
}
