// Package weights loads named material-weight presets from YAML.
package weights

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v3"

	"github.com/park285/Cheese-chesscore/internal/board"
)

//go:embed presets.yaml
var defaultFiles embed.FS

// DefaultPreset is used when no preset name is configured.
const DefaultPreset = "standard"

var ErrUnknownPreset = errors.New("unknown weight preset")

var pieceTypesByName = map[string]board.PieceType{
	"pawn":   board.Pawn,
	"knight": board.Knight,
	"bishop": board.Bishop,
	"rook":   board.Rook,
	"queen":  board.Queen,
	"king":   board.King,
}

// Catalog holds weight tables loaded from the embedded presets and an
// optional override directory.
type Catalog struct {
	mu      sync.RWMutex
	presets map[string]board.WeightTable
}

// New loads the embedded presets and then applies overrides from dir if provided.
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{presets: make(map[string]board.WeightTable)}

	raw, err := fs.ReadFile(defaultFiles, "presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded presets: %w", err)
	}
	if err := c.applyYAML(raw); err != nil {
		return nil, fmt.Errorf("embedded presets: %w", err)
	}
	if strings.TrimSpace(overrideDir) != "" {
		if err := c.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read weights dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	seen := make(map[string]string) // preset -> filename
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		parsed, err := parsePresets(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		for preset := range parsed {
			if prev, ok := seen[preset]; ok {
				return fmt.Errorf("duplicate preset %q in %s and %s", preset, prev, name)
			}
			seen[preset] = name
		}
		c.store(parsed)
	}
	return nil
}

func (c *Catalog) applyYAML(raw []byte) error {
	parsed, err := parsePresets(raw)
	if err != nil {
		return err
	}
	c.store(parsed)
	return nil
}

func (c *Catalog) store(parsed map[string]board.WeightTable) {
	c.mu.Lock()
	for k, v := range parsed {
		c.presets[k] = v
	}
	c.mu.Unlock()
}

// parsePresets decodes preset -> piece name -> weight. Every preset must
// pass board.WeightTable.Validate.
func parsePresets(raw []byte) (map[string]board.WeightTable, error) {
	var doc map[string]map[string]float64
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]board.WeightTable, len(doc))
	for name, entries := range doc {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, errors.New("preset without name")
		}
		table := make(board.WeightTable, len(pieceTypesByName))
		for piece, w := range entries {
			t, ok := pieceTypesByName[strings.ToLower(strings.TrimSpace(piece))]
			if !ok {
				return nil, fmt.Errorf("preset %s: unknown piece %q", name, piece)
			}
			table[t] = w
		}
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		out[name] = table
	}
	return out, nil
}

// Table returns a copy of the named preset.
func (c *Catalog) Table(name string) (board.WeightTable, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}
	c.mu.RLock()
	src, ok := c.presets[key]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	out := make(board.WeightTable, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, nil
}

// Names lists the loaded presets in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.presets))
	for k := range c.presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
