package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frereit/KauMA/crypto/paddingoracle"
)

// newOracleServeCommand builds the "oracle-serve" subcommand: starts the
// reference padding-oracle server on --listen for local testing against the
// padding-oracle client.
func newOracleServeCommand(logger func() *zap.Logger) *cobra.Command {
	var listen, keyHex string

	cmd := &cobra.Command{
		Use:   "oracle-serve",
		Short: "Start the reference CBC padding-oracle server",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("oracle-serve: decoding --key: %w", err)
			}

			srv, err := paddingoracle.NewServer(key, logger())
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return fmt.Errorf("oracle-serve: listening on %s: %w", listen, err)
			}
			defer ln.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger().Info("oracle: listening", zap.String("addr", ln.Addr().String()))
			return srv.Serve(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:9000", "address to listen on")
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded 16-byte key (required)")
	cmd.MarkFlagRequired("key")
	return cmd
}
