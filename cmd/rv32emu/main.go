package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/oisee/rv32emu/pkg/machine"
	"github.com/oisee/rv32emu/pkg/rv32"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32emu",
		Short: "RV32I emulator for serial-console firmware images",
	}

	// run command
	var memSize int
	var initialPC uint32
	var sdPath string
	var trace bool
	var loadState string
	var saveState string

	runCmd := &cobra.Command{
		Use:   "run [firmware.bin]",
		Short: "Run a firmware image until the CPU faults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var sdImage []byte
			if sdPath != "" {
				if sdImage, err = os.ReadFile(sdPath); err != nil {
					return err
				}
			}

			console, err := newTermConsole()
			if err != nil {
				return err
			}
			defer console.Close()

			m, err := machine.New(machine.Config{
				MemSize: memSize,
				Image:   image,
				Console: console,
				SDImage: sdImage,
			})
			if err != nil {
				return err
			}
			cpu := rv32.NewCPU(m, initialPC)

			if loadState != "" {
				snap, err := machine.LoadSnapshot(loadState)
				if err != nil {
					return err
				}
				m.Apply(snap, cpu)
			}

			fault := run(cpu, m, trace)
			console.Close()

			if saveState != "" {
				if err := machine.SaveSnapshot(saveState, m.Snapshot(cpu)); err != nil {
					return err
				}
			}
			if sdPath != "" && m.SDCard().Dirty() {
				if err := os.WriteFile(sdPath, m.SDCard().Image(), 0o644); err != nil {
					return err
				}
			}

			fmt.Fprintf(os.Stderr, "CPU error: %#x at pc 0x%08x\n", fault.Status, fault.PC)
			code := int(fault.Status & 0xFF)
			if code == 0 {
				code = 1
			}
			os.Exit(code)
			return nil
		},
	}
	runCmd.Flags().IntVar(&memSize, "mem-size", machine.DefaultMemSize, "RAM size in bytes")
	runCmd.Flags().Uint32Var(&initialPC, "pc", 0, "Initial program counter")
	runCmd.Flags().StringVar(&sdPath, "sd", "", "SD-card image file (written back on exit if modified)")
	runCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Disassemble each instruction to stderr")
	runCmd.Flags().StringVar(&loadState, "load-state", "", "Restore a machine snapshot before running")
	runCmd.Flags().StringVar(&saveState, "save-state", "", "Save a machine snapshot after the CPU faults")

	// disasm command
	var base uint32

	disasmCmd := &cobra.Command{
		Use:   "disasm [firmware.bin]",
		Short: "Disassemble a firmware image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i := 0; i+4 <= len(image); i += 4 {
				addr := base + uint32(i)
				w := binary.LittleEndian.Uint32(image[i:])
				fmt.Printf("%08x: %08x  %s\n", addr, w, rv32.Disassemble(addr, w))
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint32Var(&base, "base", 0, "Load address of the image")

	rootCmd.AddCommand(runCmd, disasmCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run steps the CPU until it faults.
func run(cpu *rv32.CPU, m *machine.Machine, trace bool) *rv32.Fault {
	for {
		if trace {
			var w uint32
			if err := m.Access(cpu.PC(), rv32.Word, false, &w); err == nil {
				fmt.Fprintf(os.Stderr, "pc 0x%08x  %s\r\n", cpu.PC(), rv32.Disassemble(cpu.PC(), w))
			}
		}
		if err := cpu.Step(); err != nil {
			var fault *rv32.Fault
			errors.As(err, &fault)
			return fault
		}
	}
}
