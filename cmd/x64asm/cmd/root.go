package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "x64asm",
	Short: "A minimal x86-64 assembler",
	Long:  `x64asm turns Intel-syntax assembly source into raw machine code bytes.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "pipeline",
		Title: "Pipeline",
	})

	rootCmd.AddCommand(assembleCmd)
}
