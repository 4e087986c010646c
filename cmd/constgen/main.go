// Package main provides the CLI entrypoint for constgen.
//
// The only command is the consuming-side symbol expansion, meant to be run
// from a go:generate directive:
//
//	constgen symbols -manifest gen/data.manifest.yaml -out symbols.gen.go -pkg app NAME...
package main

import (
	"flag"
	"fmt"
	"os"

	"constgen/symbols"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "symbols" {
		fmt.Fprintln(os.Stderr, "usage: constgen symbols -manifest FILE -out FILE -pkg NAME SYMBOL...")
		os.Exit(2)
	}

	fs := flag.NewFlagSet("symbols", flag.ExitOnError)
	manifestPath := fs.String("manifest", "", "path to the artifact manifest")
	outPath := fs.String("out", "", "path of the file to generate")
	pkg := fs.String("pkg", "", "package name of the generated file")

	_ = fs.Parse(os.Args[2:])

	if *manifestPath == "" || *outPath == "" || *pkg == "" || fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "constgen symbols: -manifest, -out, -pkg and at least one symbol are required")
		os.Exit(2)
	}

	if err := symbols.Use(*manifestPath, *outPath, *pkg, fs.Args()...); err != nil {
		fmt.Fprintln(os.Stderr, "constgen:", err)
		os.Exit(1)
	}
}
