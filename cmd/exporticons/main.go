// Command exporticons renders icons.svg to icons-16.png, icons-32.png and
// icons-64.png next to it.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/setanarut/alphavariant/svgexport"
)

func main() {
	svgPath := flag.String("svg", filepath.Join("graphics", "icons", "icons.svg"), "source SVG icon sheet")
	out := flag.String("out", "", "output directory (default: the SVG's directory)")
	flag.Parse()

	dir := *out
	if dir == "" {
		dir = filepath.Dir(*svgPath)
	}
	log.SetFlags(0)
	log.Printf("source: %s", *svgPath)

	exports := svgexport.DefaultExports()
	n, err := svgexport.ExportAll(*svgPath, dir, exports)
	log.Printf("completed: %d/%d exports successful", n, len(exports))
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
