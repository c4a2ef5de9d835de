// filesizes fills in the file_size column of an intermediate sheet by looking
// up each file's size at the location given in another column.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/human-pangenomics/hprccatalog"
	"github.com/human-pangenomics/hprccatalog/catalog"
	_ "github.com/human-pangenomics/hprccatalog/compileinfoprint"
	"github.com/human-pangenomics/hprccatalog/filesize"
	"google.golang.org/api/option"
)

func main() {
	var inputFile, outputFile, uriColumn, sizeColumn, label, region string
	var concurrency int
	var overwrite, publicS3 bool
	flag.StringVar(&inputFile, "input", "", "Sheet to read. May be a google storage URL (gs://) and may be compressed.")
	flag.StringVar(&outputFile, "output", "", "Where to write the updated sheet. Defaults to replacing --input, which must then be local and uncompressed.")
	flag.StringVar(&uriColumn, "column", "", "Column holding each file's location (s3://, gs://, http:// or https://).")
	flag.StringVar(&sizeColumn, "size-column", "file_size", "Column to fill. Appended if absent.")
	flag.StringVar(&label, "label", "", "Name used for the files in progress lines. Defaults to the input's base name.")
	flag.StringVar(&region, "region", filesize.DefaultRegion, "AWS region of the s3:// buckets.")
	flag.IntVar(&concurrency, "concurrency", 8, "Number of simultaneous lookups.")
	flag.BoolVar(&overwrite, "overwrite", false, "Look up rows that already have a size as well as empty ones.")
	flag.BoolVar(&publicS3, "s3-https", false, "Look up s3:// objects with a HEAD against the bucket's public HTTPS endpoint instead of the S3 API.")
	flag.Parse()

	if inputFile == "" {
		flag.Usage()
		log.Fatalln("Must specify an --input file")
	}

	if uriColumn == "" {
		flag.Usage()
		log.Fatalln("Must specify the --column holding file locations")
	}

	if outputFile == "" {
		outputFile = inputFile
	}
	inputFile = hprccatalog.ExpandHome(inputFile)
	outputFile = hprccatalog.ExpandHome(outputFile)
	if hprccatalog.IsGoogleStoragePath(outputFile) {
		log.Fatalln("--output must be a local path")
	}
	if _, compressed := hprccatalog.CompressionSuffix(outputFile); compressed {
		log.Fatalln("--output must not be compressed; pass an explicit --output for compressed input")
	}

	if label == "" {
		label = strings.SplitN(filepath.Base(inputFile), ".", 2)[0]
	}

	ctx := context.Background()

	gcs, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		log.Fatalln(err)
	}
	defer gcs.Close()

	resolver := &filesize.Resolver{
		GCS:         gcs,
		Logger:      log.New(os.Stdout, "", 0),
		Concurrency: concurrency,
	}
	if !publicS3 {
		client, err := filesize.NewS3Client(ctx, region)
		if err != nil {
			log.Fatalln(err)
		}
		resolver.S3 = client
	}

	var in io.ReadCloser
	if hprccatalog.IsGoogleStoragePath(inputFile) {
		// Reading the input may need credentials even when lookups don't.
		authed, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer authed.Close()
		in, err = hprccatalog.OpenSource(ctx, inputFile, authed)
		if err != nil {
			log.Fatalln(err)
		}
	} else {
		in, err = hprccatalog.OpenSource(ctx, inputFile, nil)
		if err != nil {
			log.Fatalln(err)
		}
	}
	defer in.Close()

	var out bytes.Buffer
	err = resolver.RewriteCSV(ctx, inputFile, in, &out, filesize.RewriteOptions{
		URIColumn:  uriColumn,
		SizeColumn: sizeColumn,
		Overwrite:  overwrite,
		Label:      label,
	})
	if err != nil {
		log.Fatalln(err)
	}

	if err := catalog.WriteFileAtomic(outputFile, out.Bytes()); err != nil {
		log.Fatalln(err)
	}
}
