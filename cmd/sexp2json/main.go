// Command sexp2json converts S-expressions in files (or stdin) to JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jd-boyd/sexpdata"
	"github.com/jd-boyd/sexpdata/parser"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "sexp2json [file...]",
		Short: "Convert S-expressions in files to JSON",
		Long: `Convert S-expressions in files to JSON.

Each input file is parsed as a sequence of top-level forms and written as
one JSON array. Symbols and strings become JSON strings, numbers stay
numbers, quoting forms are unwrapped. With no file arguments, reads from
stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out io.Writer = os.Stdout
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			if len(args) == 0 {
				in, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				return convert(in, out)
			}

			for _, path := range args {
				in, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if err := convert(in, out); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", `output file, "-" for stdout`)

	return cmd
}

func convert(in []byte, out io.Writer) error {
	values, err := parser.ParseAll(in)
	if err != nil {
		return err
	}

	forms := make([]interface{}, 0, len(values))
	for _, v := range values {
		forms = append(forms, toNative(v))
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(forms)
}

// toNative projects a value onto plain Go types for JSON encoding:
// symbols and strings to string, numbers to their numeric type, lists to
// slices (a dotted tail becomes the last element), quoting forms to their
// inner value.
func toNative(v *sexpdata.Value) interface{} {
	switch v.Kind() {
	case sexpdata.KindSymbol:
		return v.Name()
	case sexpdata.KindString:
		return v.Text()
	case sexpdata.KindInt:
		return v.Int()
	case sexpdata.KindFloat:
		return v.Float()
	case sexpdata.KindQuoted:
		return toNative(v.Inner())
	case sexpdata.KindList:
		elems := make([]interface{}, 0, len(v.List())+1)
		for _, e := range v.List() {
			elems = append(elems, toNative(e))
		}
		if tail := v.Tail(); tail != nil {
			elems = append(elems, toNative(tail))
		}
		return elems
	}
	return nil
}
