// Command emu101 runs a compiled EMU101 program to completion.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/en0/emu101/cpu"
	"github.com/en0/emu101/mem"
	"github.com/en0/emu101/word"
)

// Default device sizes and placement, matching the standard emulator
// session: a 0xEFFF-word RAM at 0x0000 and a 0x0FFF-word ROM at 0xF000.
const (
	ramSize = 0xEFFF
	romSize = 0x0FFF
	romBase = word.Word(0xF000)
)

func main() {
	var debug bool
	var offset uint16

	root := &cobra.Command{
		Use:           "emu101 PROG",
		Short:         "Run a compiled EMU101 program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ram := mem.NewRAM(ramSize)
			rom := mem.NewROM(romSize)
			rom.Load(data, word.Word(offset))
			bus := mem.NewBus(
				mem.Range{Start: 0x0000, Length: ramSize, Device: ram},
				mem.Range{Start: romBase, Length: romSize, Device: rom},
			)

			c := cpu.New(bus)
			if debug {
				return c.Debug()
			}
			err = c.Run()
			if dump := c.LastDump(); dump != "" {
				fmt.Fprint(os.Stderr, dump)
			}
			return err
		},
	}
	root.Flags().BoolVar(&debug, "debug", false, "step through the program in the interactive debugger")
	root.Flags().Uint16Var(&offset, "offset", 0, "word offset within ROM to load PROG at")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
