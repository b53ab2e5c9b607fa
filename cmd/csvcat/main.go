// Command csvcat reads newline-terminated CSV from a file or stdin and
// prints one record per line with its fields unquoted. It exists to show the
// engine's streaming contract end to end: the record grammar is built from
// ordinary combinators and a stream.Scanner feeds it, refilling whenever the
// parser reports incomplete input.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/gnaw/stream"
)

func main() {
	var sep string
	rootCmd := &cobra.Command{
		Use:   "csvcat [file]",
		Short: "Print CSV records parsed with the gnaw engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sep) != 1 {
				return fmt.Errorf("separator must be a single byte, got %q", sep)
			}

			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			return cat(r, cmd.OutOrStdout(), sep[0])
		},
	}
	rootCmd.Flags().StringVarP(&sep, "separator", "s", ",", "field separator byte")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func cat(r io.Reader, w io.Writer, sep byte) error {
	sc := stream.NewScanner(r, record(sep))
	for {
		fields, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse csv: %w", err)
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
}
