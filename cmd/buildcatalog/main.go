// buildcatalog writes the data explorer's JSON catalogs from the intermediate
// sheets. With no flags it reads catalog/build/intermediate/*.csv relative to
// the working directory and writes catalog/output/*.json.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/human-pangenomics/hprccatalog"
	"github.com/human-pangenomics/hprccatalog/catalog"
	_ "github.com/human-pangenomics/hprccatalog/compileinfoprint"
	"github.com/human-pangenomics/hprccatalog/config"
)

func main() {
	var configPath, root, uniqueness, only string
	var dryRun bool
	flag.StringVar(&configPath, "config", "", "Optional JSON or YAML file overriding the default sources, outputs and uniqueness modes.")
	flag.StringVar(&root, "root", "", "Directory that relative source and output paths are resolved against. Defaults to the working directory.")
	flag.StringVar(&uniqueness, "uniqueness", "", "If set, 'strict' or 'lenient' for every catalog, overriding the per-catalog defaults.")
	flag.StringVar(&only, "only", "", "Comma-separated catalogs to build (sequencing-data, assemblies, annotations, alignments). Defaults to all.")
	flag.BoolVar(&dryRun, "dry-run", false, "Read, map and check every source without writing any catalog.")
	flag.Parse()

	// Progress goes to stdout, undecorated, like the rest of the site build.
	logger := log.New(os.Stdout, "", 0)

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	if root != "" {
		cfg.Root = hprccatalog.ExpandHome(root)
	}

	if uniqueness != "" {
		u, err := config.ParseUniqueness(uniqueness)
		if err != nil {
			flag.Usage()
			log.Fatalln(err)
		}
		cfg.SetUniqueness(u)
	}

	if only != "" {
		var keep []config.Entity
		for _, name := range strings.Split(only, ",") {
			e, err := config.ParseEntity(name)
			if err != nil {
				flag.Usage()
				log.Fatalln(err)
			}
			keep = append(keep, e)
		}
		cfg.Only(keep...)
	}

	ctx := context.Background()

	var client *storage.Client
	if readsGoogleStorage(cfg) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	b := &catalog.Builder{
		Config:  cfg,
		Storage: client,
		Logger:  logger,
		DryRun:  dryRun,
	}

	if _, err := b.Run(ctx); err != nil {
		log.Fatalln(err)
	}
}

func readsGoogleStorage(cfg config.Config) bool {
	for _, e := range config.Entities {
		cat := cfg.Catalog(e)
		if cat.Skip {
			continue
		}
		for _, path := range cat.Sources {
			if hprccatalog.IsGoogleStoragePath(path) {
				return true
			}
		}
	}
	return false
}
