package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelfd/cmd/client"
	"shelfd/cmd/local"
	"shelfd/cmd/serve"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "shelfd",
		Short: "library management line-protocol server",
		Long: fmt.Sprintf(`shelfd (v%s)

A library management system served over a newline-delimited text protocol:
many concurrent clients carry out guided dialogues (login, registration,
book search, borrow, return, administration) against a small file-backed
catalog of books, users and loan transactions.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of shelfd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shelfd v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(local.LocalCmd)
	RootCmd.AddCommand(client.ClientCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
