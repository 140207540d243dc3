// Package session pairs a schematic with its board and applies attribute
// edits to both. It owns the file naming convention, the unsaved changes
// flag and the missing board warning.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBOM/internal/config"
	"github.com/OpenTraceLab/OpenTraceBOM/internal/metrics"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle/board"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle/schematic"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/editscript"
)

var (
	// ErrUnknownPart is returned when an edit names a part that is not in
	// the schematic.
	ErrUnknownPart = errors.New("unknown part")
	// ErrNotEditable is returned when an edit names an attribute outside the
	// configured editable set.
	ErrNotEditable = errors.New("attribute not editable")
)

// Options configures Open. Nil fields get defaults.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Session is an open schematic and its board counterpart.
type Session struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics

	sch       *schematic.Schematic
	brd       *board.Board
	path      string
	boardPath string
	dirty     bool
	warnings  []error
}

// BoardPath derives the board file name from a schematic file name by
// replacing its extension.
func BoardPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Open loads the schematic at path and, if present, the board next to it. A
// missing board is not an error: the session continues with an empty board
// and records eagle.ErrMissingCounterpart in Warnings.
func Open(path string, opts Options) (*Session, error) {
	s := &Session{
		cfg:     opts.Config,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if s.cfg == nil {
		s.cfg = config.DefaultConfig()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	sch, err := schematic.ParseFile(path)
	if err != nil {
		s.metrics.LoadFailures.WithLabelValues(metrics.KindSchematic).Inc()
		return nil, err
	}
	s.metrics.DocumentsLoaded.WithLabelValues(metrics.KindSchematic).Inc()
	s.metrics.BOMParts.Set(float64(len(sch.BOM())))
	s.log.Debug("schematic loaded",
		zap.String("path", path),
		zap.Int("parts", len(sch.Parts)),
		zap.Int("bom_parts", len(sch.BOM())),
	)

	s.sch = sch
	s.path = path
	s.boardPath = BoardPath(path, s.cfg.BoardExtension)

	if err := s.openBoard(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) openBoard() error {
	if _, err := os.Stat(s.boardPath); errors.Is(err, fs.ErrNotExist) {
		s.brd = board.New()
		warning := fmt.Errorf("%w: %s", eagle.ErrMissingCounterpart, s.boardPath)
		s.warnings = append(s.warnings, warning)
		s.log.Warn("no board file found, edits will not be synced to the board",
			zap.String("board", s.boardPath))
		return nil
	}

	brd, err := board.ParseFile(s.boardPath)
	if err != nil {
		s.metrics.LoadFailures.WithLabelValues(metrics.KindBoard).Inc()
		return err
	}
	s.metrics.DocumentsLoaded.WithLabelValues(metrics.KindBoard).Inc()
	s.log.Debug("board loaded",
		zap.String("path", s.boardPath),
		zap.Int("elements", len(brd.Elements)),
	)
	s.brd = brd
	return nil
}

// Schematic returns the loaded schematic.
func (s *Session) Schematic() *schematic.Schematic { return s.sch }

// Board returns the board; it is empty when no board file was found.
func (s *Session) Board() *board.Board { return s.brd }

// Path returns the schematic path the session was opened from or last saved to.
func (s *Session) Path() string { return s.path }

// BoardPath returns the board path belonging to Path.
func (s *Session) BoardPath() string { return s.boardPath }

// Dirty reports whether there are unsaved edits.
func (s *Session) Dirty() bool { return s.dirty }

// Warnings returns the non-fatal problems found while opening.
func (s *Session) Warnings() []error {
	out := make([]error, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Metrics returns the session's metrics.
func (s *Session) Metrics() *metrics.Metrics { return s.metrics }

// BOMNames returns the names of the BOM parts in BOM order.
func (s *Session) BOMNames() []string {
	bom := s.sch.BOM()
	names := make([]string, len(bom))
	for i, p := range bom {
		names[i] = p.Name
	}
	return names
}

// check verifies an edit before anything is written.
func (s *Session) check(parts []string, name string) error {
	if !s.cfg.IsEditable(name) {
		return fmt.Errorf("session: %w: %s", ErrNotEditable, name)
	}
	for _, p := range parts {
		if s.sch.Part(p) == nil {
			return fmt.Errorf("session: %w: %s", ErrUnknownPart, p)
		}
	}
	return nil
}

// SetAttribute writes name=value on every named part and mirrors each write
// to the board element of the same name. Nothing is written if a part is
// unknown or the attribute is not editable.
func (s *Session) SetAttribute(parts []string, name, value string) error {
	if err := s.check(parts, name); err != nil {
		return err
	}
	for _, p := range parts {
		s.set(p, name, value)
	}
	return nil
}

func (s *Session) set(partName, name, value string) {
	outcome := s.sch.Part(partName).SetAttribute(name, value)
	s.metrics.AttributeWrites.WithLabelValues(metrics.TargetPart, outcome.String()).Inc()

	mirrored, ok := s.brd.SetAttribute(partName, name, value)
	if ok {
		s.metrics.AttributeWrites.WithLabelValues(metrics.TargetElement, mirrored.String()).Inc()
	} else {
		s.metrics.MirrorMisses.Inc()
	}

	s.dirty = true
	s.log.Debug("attribute set",
		zap.String("part", partName),
		zap.String("attribute", name),
		zap.String("value", value),
		zap.Stringer("outcome", outcome),
		zap.Bool("mirrored", ok),
	)
}

// Apply runs every edit of script in order. All edits are checked first, so
// a script with an unknown part or attribute changes nothing.
func (s *Session) Apply(script *editscript.Script) error {
	edits := script.Edits()
	targets := make([][]string, len(edits))
	for i, e := range edits {
		targets[i] = e.Targets
		if e.All {
			targets[i] = s.BOMNames()
		}
		if err := s.check(targets[i], e.Name); err != nil {
			return fmt.Errorf("%s: %w", e.Pos, err)
		}
	}

	for i, e := range edits {
		for _, p := range targets[i] {
			s.set(p, e.Name, e.Value)
		}
	}
	s.log.Debug("script applied", zap.Int("edits", len(edits)))
	return nil
}

// CommonValue returns the effective value of name if all parts agree on it,
// and "" otherwise. Unknown parts are ignored.
func (s *Session) CommonValue(parts []string, name string) string {
	value, first := "", true
	for _, n := range parts {
		p := s.sch.Part(n)
		if p == nil {
			continue
		}
		v := p.Attribute(name)
		if first {
			value, first = v, false
			continue
		}
		if v != value {
			return ""
		}
	}
	return value
}

// Save writes the schematic to path and, unless the board is empty, the
// board to the matching board path. An empty path saves in place. The
// session then refers to the new paths and is no longer dirty.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	boardPath := BoardPath(path, s.cfg.BoardExtension)

	if err := s.sch.Save(path); err != nil {
		return fmt.Errorf("session: save schematic: %w", err)
	}
	if !s.brd.IsEmpty() {
		if err := s.brd.Save(boardPath); err != nil {
			return fmt.Errorf("session: save board: %w", err)
		}
	}

	s.log.Info("saved",
		zap.String("schematic", path),
		zap.Bool("board", !s.brd.IsEmpty()),
	)
	s.path = path
	s.boardPath = boardPath
	s.dirty = false
	return nil
}
