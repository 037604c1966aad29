// Package main provides the devtool CLI, which runs the toolbox tools from a terminal.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devtool",
		Short: "Developer toolbox on the command line",
		Long: `Run the toolbox tools without the web UI.

Input is read from the first argument, or from --file, or from stdin.

Examples:
  echo '{"b":1,"a":2}' | devtool json format --sort
  devtool base64 encode "hello"
  devtool hash sha256 --file go.mod
  devtool time 1700000000 --zone Asia/Shanghai
  devtool qrcode "https://example.com"
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		jsonCmd(),
		base64Cmd(),
		hashCmd(),
		regexCmd(),
		timeCmd(),
		diffCmd(),
		qrcodeCmd(),
		imageCmd(),
		routesCmd(),
		menuCmd(),
	)
	return cmd
}

// readInput returns args[0], the contents of file, or stdin, in that order
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := readInputBytes(cmd, file)
	return string(data), err
}

func readInputBytes(cmd *cobra.Command, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(s, "\n"))
}
