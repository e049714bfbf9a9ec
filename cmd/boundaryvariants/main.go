// Command boundaryvariants renders translucency variants of the boundary
// graphics, or inspects individual assets with -inspect.
//
//	boundaryvariants -root graphics
//	boundaryvariants -config variants.json -workers 4
//	boundaryvariants -inspect -palette 4 graphics/base/edge/*.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/setanarut/alphavariant"
	"github.com/setanarut/alphavariant/utils"
)

var (
	configPath = flag.String("config", "", "JSON config file (optional)")
	root       = flag.String("root", "graphics", "graphics root; inputs default to <root>/base, outputs to <root>/<tag>")
	baseDir    = flag.String("base", "", "override input base directory")
	outDir     = flag.String("out", "", "override output root directory")
	workers    = flag.Int("workers", -1, "images processed in parallel (default from config, 1)")
	inspect    = flag.Bool("inspect", false, "print alpha modes and palette of the image arguments instead of running the batch")
	palette    = flag.Int("palette", 4, "palette size for -inspect (0 disables)")
	method     = flag.String("method", "dominantcolor", "palette method for -inspect: dominantcolor or kmeans")
	swatchDir  = flag.String("swatch", "", "with -inspect, write a palette swatch PNG per image into this directory")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *inspect {
		if flag.NArg() == 0 {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(runInspect(flag.Args()))
	}
	os.Exit(runBatch())
}

func runBatch() int {
	cfg := alphavariant.DefaultConfig(*root)
	if *configPath != "" {
		var err error
		cfg, err = alphavariant.LoadConfig(*configPath, *root)
		if err != nil {
			log.Print(err)
			return 2
		}
	}
	if *baseDir != "" {
		cfg.BaseDir = *baseDir
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := alphavariant.Run(ctx, cfg)
	if report == nil {
		log.Print(err)
		return 2
	}
	if failed := report.Failed(); len(failed) > 0 || err != nil {
		log.Printf("%d of %d files failed", len(failed), len(report.Results))
		return 1
	}
	return 0
}

func runInspect(paths []string) int {
	m, err := utils.ParsePaletteMethod(*method)
	if err != nil {
		log.Print(err)
		return 2
	}
	status := 0
	for _, p := range paths {
		img, err := utils.ReadImage(p)
		if err != nil {
			log.Printf("%s: %v", p, err)
			status = 1
			continue
		}
		ins := alphavariant.Inspect(img, *palette, m)
		fmt.Printf("%s: %v\n", p, ins)
		if *swatchDir == "" || len(ins.Palette) == 0 {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)) + "-palette.png"
		if err := utils.SavePalette(ins.Palette, 32, filepath.Join(*swatchDir, name)); err != nil {
			log.Printf("%s: swatch: %v", p, err)
			status = 1
		}
	}
	return status
}
