package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fdgo/internal/cache"
	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/server"
)

func serveCmd() *cobra.Command {
	defaults := server.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maturity and closure previews over HTTP",
		Long: `Serve the preview API used by the opening form:

  POST /preview/maturity
  POST /preview/simulate-closure
  GET  /preview/default-rate?tenure_months=N
  GET  /preview/settings
  GET  /health

Previews are memoized in memory, or in Redis when --redis is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var memo cache.Cache
			redisAddr, _ := cmd.Flags().GetString("redis")
			if redisAddr != "" {
				rc := cache.NewRedisCache(redisAddr, "fdgo:preview:", cache.DefaultRedisTTL)
				defer rc.Close()

				pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
				err := rc.Ping(pingCtx)
				cancel()
				if err != nil {
					return fmt.Errorf("redis at %s: %w", redisAddr, err)
				}
				log.Printf("memoizing previews in redis at %s", redisAddr)
				memo = rc
			}

			engine := newEngine(cmd)
			handler := server.NewPreviewHandler(engine, calculation.NewPreviewer(engine, memo), settings)

			opts := server.DefaultOptions()
			opts.Addr, _ = cmd.Flags().GetString("addr")
			opts.RateCapacity, _ = cmd.Flags().GetInt("rate-limit")
			return server.Run(ctx, handler, opts)
		},
	}
	cmd.Flags().String("addr", defaults.Addr, "Listen address")
	cmd.Flags().Int("rate-limit", defaults.RateCapacity, "Requests per minute per client")
	cmd.Flags().String("redis", envOr(config.EnvRedisAddr, ""), "Redis address for the preview cache (env "+config.EnvRedisAddr+")")
	return cmd
}
