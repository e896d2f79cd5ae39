package cmd

import (
	"fmt"
	"os"

	"github.com/keurnel/x64asm"
	"github.com/keurnel/x64asm/elf64"
	"github.com/keurnel/x64asm/internal/trace"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:     "assemble <source-file>",
	GroupID: "pipeline",
	Short:   "Assemble a source file into machine code",
	Long:    `Assemble a source file into machine code, optionally wrapping it as a runnable ELF64 executable.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(cmd, args)
	},
}

func init() {
	assembleCmd.Flags().StringP("output", "o", "a.out", "output file path")
	assembleCmd.Flags().Bool("elf", false, "wrap the output as a minimal runnable ELF64 executable")
	assembleCmd.Flags().Bool("trace", false, "print one diagnostic line per encoded instruction to stderr")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	wantTrace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}

	var sink *trace.Sink
	if wantTrace {
		sink = trace.NewSink()
	}

	code, err := x64asm.AssembleWithTrace(string(source), sink)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	if sink != nil {
		printTrace(cmd, sink)
	}

	wantELF, err := cmd.Flags().GetBool("elf")
	if err != nil {
		return err
	}
	if wantELF {
		code, err = elf64.WrapExecutable(code)
		if err != nil {
			return fmt.Errorf("wrap elf64 executable: %w", err)
		}
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if wantELF {
		perm = 0o755
	}
	if err := os.WriteFile(output, code, perm); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func printTrace(cmd *cobra.Command, sink *trace.Sink) {
	for _, entry := range sink.Entries() {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", entry.Phase, entry.Severity, entry.Message)
	}
}
