// Command streamson processes a JSON byte stream from stdin, matching parts
// of it by path and extracting, removing, converting or observing them.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// Exit codes.
const (
	exitCodeGeneral = 1
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "streamson:", err)
		os.Exit(exitCodeGeneral)
	}
}

func rootCmd() *cobra.Command {
	godotenv.Load() //nolint:errcheck

	root := &cobra.Command{
		Use:           "streamson",
		Short:         "Process a JSON stream with path matchers and handlers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int("buffer-size", defaultBufferSize(), "read chunk size in bytes")

	root.AddCommand(
		extractCmd(),
		filterCmd(),
		convertCmd(),
		triggerCmd(),
		allCmd(),
	)
	return root
}

func defaultBufferSize() int {
	if v := os.Getenv("STREAMSON_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1 << 20
}

// strategyFlags wires the matcher and handler flags shared by the
// subcommands. The long-only --help flag is registered first so the -h
// shorthand stays free for --handler, as in the original tool.
func strategyFlags(cmd *cobra.Command, matchers, handlers *[]string, withMatchers bool) {
	cmd.Flags().Bool("help", false, "help for "+cmd.Name())
	if withMatchers {
		cmd.Flags().StringArrayVarP(matchers, "matcher", "m", nil,
			"matcher NAME[.GROUP][:DEFINITION]; NAME is s|simple, d|depth or x|regex")
	}
	cmd.Flags().StringArrayVarP(handlers, "handler", "h", nil,
		"handler NAME[.GROUP][,OPTION...][:DEFINITION]")
}
