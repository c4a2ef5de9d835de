package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/human-pangenomics/hprccatalog/config"
	"github.com/human-pangenomics/hprccatalog/source"
	"golang.org/x/sync/errgroup"
)

// Builder produces every catalog enabled in Config.
type Builder struct {
	Config config.Config

	// Storage is required only when a source is a gs:// URI.
	Storage *storage.Client

	// Logger receives progress lines and warnings. Nil discards them.
	Logger *log.Logger

	// DryRun validates and maps every source without writing anything.
	DryRun bool
}

// Result describes one built catalog.
type Result struct {
	Entity config.Entity
	Label  string
	Count  int

	// Output is the resolved destination path.
	Output string

	data []byte
}

// Run builds all enabled catalogs concurrently. If any build fails nothing is
// written. Otherwise each catalog is written in turn, replacing the previous
// file atomically.
func (b *Builder) Run(ctx context.Context) ([]Result, error) {
	logger := b.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if err := b.Config.Validate(); err != nil {
		return nil, err
	}
	delimiter, err := b.Config.DelimiterRune()
	if err != nil {
		return nil, err
	}

	logger.Println("Building catalog...")

	built := make([]*Result, len(config.Entities))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range config.Entities {
		cat := b.Config.Catalog(e)
		if cat.Skip {
			continue
		}

		sources := make([]string, 0, len(cat.Sources))
		for _, path := range cat.Sources {
			sources = append(sources, b.Config.Resolve(path))
		}
		s := Settings{
			Sources:    sources,
			Uniqueness: cat.Uniqueness,
			Source:     source.Options{Delimiter: delimiter, Storage: b.Storage},
			Logger:     logger,
		}
		output := b.Config.Resolve(cat.Output)

		g.Go(func() error {
			r, err := build(gctx, e, s)
			if err != nil {
				return err
			}
			r.Output = output
			built[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Result
	for _, r := range built {
		if r == nil {
			continue
		}

		logger.Printf("%s: %d", r.Label, r.Count)
		if !b.DryRun {
			if err := WriteFileAtomic(r.Output, r.data); err != nil {
				return results, err
			}
		}
		results = append(results, *r)
	}

	logger.Println("Done")

	return results, nil
}

func build(ctx context.Context, e config.Entity, s Settings) (Result, error) {
	switch e {
	case config.RawSequencingData:
		return buildDefinition(ctx, e, RawSequencingData, s)
	case config.Assemblies:
		return buildDefinition(ctx, e, Assemblies, s)
	case config.Annotations:
		return buildDefinition(ctx, e, Annotations, s)
	case config.Alignments:
		return buildDefinition(ctx, e, Alignments, s)
	}
	return Result{}, fmt.Errorf("unknown catalog %q", e)
}

func buildDefinition[R source.Schema, E any](ctx context.Context, e config.Entity, d Definition[R, E], s Settings) (Result, error) {
	entities, err := d.Build(ctx, s)
	if err != nil {
		return Result{}, err
	}

	data, err := Marshal(entities)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", e, err)
	}

	return Result{Entity: e, Label: d.Label, Count: len(entities), data: data}, nil
}

// WriteFileAtomic replaces path with data via a temporary file in the same
// directory, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pfx.Err(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return pfx.Err(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pfx.Err(err)
	}
	if err := tmp.Close(); err != nil {
		return pfx.Err(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.Rename(tmp.Name(), path))
}
