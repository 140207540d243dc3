package editscript

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a complete edit script: a sequence of blocks applied in order.
//
// Example:
//
//	# pull-ups
//	R1, R2 {
//	    MPN = "RC0603FR-0710KL";
//	    MANUFACTURER = "Yageo"
//	}
//	* { OC_DIGIKEY = "" }
type Script struct {
	Blocks []*Block `@@*`
}

// Block assigns attributes to one or more targets.
type Block struct {
	Pos lexer.Position

	Targets     []*Target     `@@ ( "," @@ )*`
	Assignments []*Assignment `"{" @@* "}"`
}

// Target is a part name or the wildcard "*" (every BOM part).
type Target struct {
	All  bool   `  @"*"`
	Name string `| @( Ident | String )`
}

// Assignment sets one attribute. The trailing semicolon is optional.
type Assignment struct {
	Pos lexer.Position

	Name  string `@Ident "="`
	Value string `@String ";"?`
}

// Edit is a single attribute write on a set of parts.
type Edit struct {
	Targets []string // part names, empty when All is set
	All     bool
	Name    string
	Value   string
	Pos     lexer.Position
}

// Edits flattens the script into one Edit per assignment, in source order.
func (s *Script) Edits() []Edit {
	var edits []Edit
	for _, b := range s.Blocks {
		all := false
		var targets []string
		for _, t := range b.Targets {
			if t.All {
				all = true
				continue
			}
			targets = append(targets, t.Name)
		}
		if all {
			targets = nil
		}
		for _, a := range b.Assignments {
			edits = append(edits, Edit{
				Targets: targets,
				All:     all,
				Name:    a.Name,
				Value:   a.Value,
				Pos:     a.Pos,
			})
		}
	}
	return edits
}
