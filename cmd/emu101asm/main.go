// Command emu101asm compiles EMU101 assembly source into an object file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/en0/emu101/asm"
)

func main() {
	var listing bool

	root := &cobra.Command{
		Use:           "emu101asm SRC DST",
		Short:         "Assemble EMU101 source into an object file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer dst.Close()

			a := asm.New()
			if listing {
				a.Listing = os.Stdout
			}
			return a.Assemble(src, dst)
		},
	}
	root.Flags().BoolVar(&listing, "listing", false, "print an assembly listing to stdout")

	if err := root.Execute(); err != nil {
		var ce *asm.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
