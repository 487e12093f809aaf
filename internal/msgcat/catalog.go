// Package msgcat holds the user-facing chess messages: an embedded english
// catalog, optionally overridden per key from a directory of yaml files.
package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	yaml "gopkg.in/yaml.v3"

	"github.com/park285/chesscore/pkg/chessdto"
)

//go:embed messages.en.yaml
var defaultFiles embed.FS

const defaultFile = "messages.en.yaml"

// requiredKeys are rendered by the presenter; a catalog missing any of them
// is rejected at load time.
var requiredKeys = []string{
	"chess.start",
	"chess.loaded",
	"chess.player_move",
	"chess.engine_move",
	"chess.assist",
	"chess.undo",
	"chess.difficulty",
	"chess.color",
	"chess.status",
	"chess.captured",
	"chess.recent",
	"chess.opening",
	"chess.fen",
	"chess.help",
	"chess.bye",
	"chess.unknown_command",
	"chess.outcome.white_mates",
	"chess.outcome.black_mates",
	"chess.outcome.stalemate",
	"chess.outcome.draw",
}

// errorCodes must each have an errors.<code> entry.
var errorCodes = []string{
	chessdto.CodeInvalidMove,
	chessdto.CodeIllegalMove,
	chessdto.CodeGameOver,
	chessdto.CodeInvalidPosition,
	chessdto.CodeNothingToUndo,
	chessdto.CodeEngineTimeout,
	chessdto.CodeReplyPending,
	chessdto.CodeInvalidArgument,
	chessdto.CodeInternal,
}

// Catalog maps flattened dot-keys to parsed templates. Templates run with
// missingkey=error. The map is read-only after New.
type Catalog struct {
	templates map[string]*template.Template
}

// New loads the embedded messages, applies overrides from overrideDir when
// given, and checks that every key the presenter needs is present.
func New(overrideDir string) (*Catalog, error) {
	raw, err := fs.ReadFile(defaultFiles, defaultFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded messages: %w", err)
	}
	flat, err := parseYAMLToFlat(raw)
	if err != nil {
		return nil, fmt.Errorf("parse embedded messages: %w", err)
	}
	if strings.TrimSpace(overrideDir) != "" {
		overrides, err := readOverrides(overrideDir)
		if err != nil {
			return nil, err
		}
		for k, v := range overrides {
			if _, ok := flat[k]; !ok {
				return nil, fmt.Errorf("unknown message key %q", k)
			}
			flat[k] = v
		}
	}

	c := &Catalog{templates: make(map[string]*template.Template, len(flat))}
	for k, v := range flat {
		if strings.TrimSpace(v) == "" {
			continue
		}
		t, err := template.New(k).Option("missingkey=error").Parse(v)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", k, err)
		}
		c.templates[k] = t
	}
	if err := c.checkRequired(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) checkRequired() error {
	var missing []string
	for _, k := range requiredKeys {
		if !c.Has(k) {
			missing = append(missing, k)
		}
	}
	for _, code := range errorCodes {
		if !c.Has("errors." + code) {
			missing = append(missing, "errors."+code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing messages: %s", strings.Join(missing, ", "))
	}
	return nil
}

// readOverrides reads every .yaml/.yml file in dir in name order. A key may
// be overridden by one file only.
func readOverrides(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read messages dir: %w", err)
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

	out := make(map[string]string)
	seen := make(map[string]string)
	for _, name := range files {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		flat, err := parseYAMLToFlat(b)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for k, v := range flat {
			if prev, ok := seen[k]; ok {
				return nil, fmt.Errorf("duplicate override key %q in %s and %s", k, prev, name)
			}
			seen[k] = name
			out[k] = v
		}
	}
	return out, nil
}

func parseYAMLToFlat(b []byte) (map[string]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	if err := flattenStrings(m, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func flattenStrings(src any, prefix string, out map[string]string) error {
	switch v := src.(type) {
	case map[string]any:
		for k, vv := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flattenStrings(vv, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return errors.New("string value without key prefix")
		}
		out[prefix] = v
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported value at %s: %T", prefix, v)
	}
}

// Render executes the template stored under key.
// Unknown keys are errors; use Text when a fallback is acceptable.
func (c *Catalog) Render(key string, data any) (string, error) {
	t, ok := c.templates[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("template not found: %s", key)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Text renders key and returns fallback on any error.
func (c *Catalog) Text(key string, data any, fallback string) string {
	if c == nil {
		return fallback
	}
	out, err := c.Render(key, data)
	if err != nil {
		return fallback
	}
	return out
}

// Has reports whether key is present.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.templates[strings.TrimSpace(key)]
	return ok
}
