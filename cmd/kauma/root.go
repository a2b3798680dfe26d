package main

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frereit/KauMA/config"
)

// newRootCommand builds the "kauma" cobra.Command tree: global logging
// flags, then the run and oracle-serve subcommands.
func newRootCommand() *cobra.Command {
	logging := &config.Logging{Level: "info", Format: "console"}
	var logger *zap.Logger

	root := &cobra.Command{
		Use:           "kauma",
		Short:         "GCM algebra and cryptanalysis toolbox",
		Long:          "kauma is a cryptanalysis toolbox built around GCM: GF(2^128) field arithmetic, GHASH, AES-GCM encryption, Cantor-Zassenhaus factorization, nonce-reuse tag forgery, and a CBC padding-oracle attack.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.NewLogger()
			if err != nil {
				return err
			}
			logger = l
			logger.Debug("cpu features",
				zap.Bool("pclmulqdq", cpuid.CPU.Supports(cpuid.CLMUL)),
				zap.Bool("sse2", cpuid.CPU.Supports(cpuid.SSE2)),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logging.Level, "log-level", logging.Level, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logging.Format, "log-format", logging.Format, "log encoding (console, json)")

	root.AddCommand(newRunCommand(func() *zap.Logger { return logger }))
	root.AddCommand(newOracleServeCommand(func() *zap.Logger { return logger }))
	return root
}
