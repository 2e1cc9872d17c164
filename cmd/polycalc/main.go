// cmd/polycalc/main.go — evaluate a polynomial worksheet
//
// Usage:
//   go run ./cmd/polycalc worksheet.yaml
//   go run ./cmd/polycalc -json worksheet.yaml
//   cat worksheet.yaml | go run ./cmd/polycalc -
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/njchilds90/gopoly/internal/log"
	"github.com/njchilds90/gopoly/internal/worksheet"
)

func main() {
	asJSON := flag.Bool("json", false, "print results as a JSON array")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: polycalc [-json] FILE|-\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.Default().Module("polycalc")
	if err := run(flag.Arg(0), *asJSON, os.Stdin, os.Stdout); err != nil {
		logger.Error("worksheet failed", "file", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

func run(path string, asJSON bool, stdin io.Reader, out io.Writer) error {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	ws, err := worksheet.Load(in)
	if err != nil {
		return err
	}
	results, err := ws.Evaluate()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(out, r); err != nil {
			return err
		}
	}
	return nil
}
