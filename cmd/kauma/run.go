package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frereit/KauMA/action"
)

// newRunCommand builds the "run" subcommand: reads one JSON action request
// from --input (stdin if unset) and writes the JSON response to --output
// (stdout if unset).
func newRunCommand(logger func() *zap.Logger) *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single action from a JSON request document",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
			}

			var out bytes.Buffer
			if err := action.Dispatch(input, &out); err != nil {
				logger().Error("action failed", zap.Error(err))
				return err
			}

			output := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				output = f
			}
			_, err := output.Write(out.Bytes())
			return err
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to the JSON request document (default: stdin)")
	cmd.Flags().StringVar(&outputPath, "output", "", "path to write the JSON response (default: stdout)")
	return cmd
}
