package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docschema",
		Short:         "Build JSON Schemas from Go function signatures and doc comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenCmd())
	root.AddCommand(newServeCmd())
	return root
}
