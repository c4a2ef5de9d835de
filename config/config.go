// Package config describes a catalog build: where each entity's source sheets
// live, where its catalog is written, and how duplicate identities are handled.
// The zero-argument build uses Default; a JSON or YAML file may override any
// part of it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/carbocation/pfx"
	"github.com/human-pangenomics/hprccatalog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceDir = "catalog/build/intermediate"
	DefaultOutputDir = "catalog/output"
)

// Uniqueness selects how colliding identity keys are handled.
type Uniqueness string

const (
	// Strict aborts the build and lists every duplicated key.
	Strict Uniqueness = "strict"

	// Lenient keeps the first record with each key and drops the rest.
	Lenient Uniqueness = "lenient"
)

func ParseUniqueness(s string) (Uniqueness, error) {
	switch u := Uniqueness(strings.ToLower(strings.TrimSpace(s))); u {
	case Strict, Lenient:
		return u, nil
	}
	return "", fmt.Errorf("unknown uniqueness mode %q (want %q or %q)", s, Strict, Lenient)
}

// Entity names a catalog. The name doubles as the base name of its default
// source and output files.
type Entity string

const (
	RawSequencingData Entity = "sequencing-data"
	Assemblies        Entity = "assemblies"
	Annotations       Entity = "annotations"
	Alignments        Entity = "alignments"
)

// Entities lists every catalog in build and log order.
var Entities = []Entity{RawSequencingData, Assemblies, Annotations, Alignments}

func ParseEntity(s string) (Entity, error) {
	for _, e := range Entities {
		if string(e) == strings.TrimSpace(s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown catalog %q", s)
}

// Catalog configures one entity type.
type Catalog struct {
	// Sources are read in order and concatenated. Local paths, gs:// URIs and
	// compressed files are all accepted.
	Sources    []string   `json:"sources" yaml:"sources"`
	Output     string     `json:"output" yaml:"output"`
	Uniqueness Uniqueness `json:"uniqueness" yaml:"uniqueness"`
	Skip       bool       `json:"skip" yaml:"skip"`
}

type Config struct {
	// Root is prepended to every relative path. Empty means the working
	// directory.
	Root string `json:"root" yaml:"root"`

	// Delimiter is "auto", "comma", "tab", or a single character.
	Delimiter string `json:"delimiter" yaml:"delimiter"`

	RawSequencingData Catalog `json:"sequencingData" yaml:"sequencingData"`
	Assemblies        Catalog `json:"assemblies" yaml:"assemblies"`
	Annotations       Catalog `json:"annotations" yaml:"annotations"`
	Alignments        Catalog `json:"alignments" yaml:"alignments"`
}

// Default matches the site's build layout. Raw sequencing data comes from
// several tracking sheets and tolerates repeats; the rest must be unique.
func Default() Config {
	return Config{
		Delimiter:         "auto",
		RawSequencingData: defaultCatalog(RawSequencingData, Lenient),
		Assemblies:        defaultCatalog(Assemblies, Strict),
		Annotations:       defaultCatalog(Annotations, Strict),
		Alignments:        defaultCatalog(Alignments, Strict),
	}
}

func defaultCatalog(e Entity, u Uniqueness) Catalog {
	return Catalog{
		Sources:    []string{DefaultSourceDir + "/" + string(e) + ".csv"},
		Output:     DefaultOutputDir + "/" + string(e) + ".json",
		Uniqueness: u,
	}
}

// Load overlays the file at path onto Default. Files ending in .yaml or .yml
// are YAML; anything else is JSON.
func Load(path string) (Config, error) {
	out := Default()

	path = hprccatalog.ExpandHome(path)
	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&out); err != nil {
			return out, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
	default:
		dec := json.NewDecoder(f)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			var syntax *json.SyntaxError
			if errors.As(err, &syntax) {
				return out, pfx.Err(fmt.Errorf("%s: syntax error at byte offset %d: %w", path, syntax.Offset, err))
			}
			return out, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
	}

	out.Root = hprccatalog.ExpandHome(out.Root)
	for _, e := range Entities {
		cat := out.Catalog(e)
		if u, err := ParseUniqueness(string(cat.Uniqueness)); err == nil {
			cat.Uniqueness = u
		}
	}

	return out, out.Validate()
}

// Catalog returns the section for e.
func (c *Config) Catalog(e Entity) *Catalog {
	switch e {
	case RawSequencingData:
		return &c.RawSequencingData
	case Assemblies:
		return &c.Assemblies
	case Annotations:
		return &c.Annotations
	case Alignments:
		return &c.Alignments
	}
	return nil
}

// SetUniqueness applies u to every catalog.
func (c *Config) SetUniqueness(u Uniqueness) {
	for _, e := range Entities {
		c.Catalog(e).Uniqueness = u
	}
}

// Only skips every catalog not named in keep.
func (c *Config) Only(keep ...Entity) {
	for _, e := range Entities {
		c.Catalog(e).Skip = true
	}
	for _, e := range keep {
		if cat := c.Catalog(e); cat != nil {
			cat.Skip = false
		}
	}
}

// DelimiterRune interprets Delimiter. Zero means infer per file.
func (c Config) DelimiterRune() (rune, error) {
	switch strings.ToLower(c.Delimiter) {
	case "", "auto":
		return 0, nil
	case "comma":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}

	if utf8.RuneCountInString(c.Delimiter) == 1 {
		r, _ := utf8.DecodeRuneInString(c.Delimiter)
		if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			return 0, fmt.Errorf("invalid delimiter %q", c.Delimiter)
		}
		return r, nil
	}

	return 0, fmt.Errorf("invalid delimiter %q", c.Delimiter)
}

// Resolve anchors a relative local path at Root. gs:// URIs and absolute
// paths are returned as-is (after ~ expansion).
func (c Config) Resolve(path string) string {
	if hprccatalog.IsGoogleStoragePath(path) {
		return path
	}
	path = hprccatalog.ExpandHome(path)
	if c.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// Validate reports the first problem that would make a build meaningless.
func (c Config) Validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}

	outputs := make(map[string]Entity)
	for _, e := range Entities {
		cat := c.Catalog(e)
		if cat.Skip {
			continue
		}
		if _, err := ParseUniqueness(string(cat.Uniqueness)); err != nil {
			return fmt.Errorf("%s: %w", e, err)
		}
		if len(cat.Sources) == 0 {
			return fmt.Errorf("%s: no sources", e)
		}
		if cat.Output == "" {
			return fmt.Errorf("%s: no output", e)
		}
		resolved := c.Resolve(cat.Output)
		if other, exists := outputs[resolved]; exists {
			return fmt.Errorf("%s and %s both write %s", other, e, resolved)
		}
		outputs[resolved] = e
	}

	return nil
}
