package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// Options configures the preview server
type Options struct {
	Addr          string
	RateCapacity  int // requests per client per RateRefill
	RateRefill    time.Duration
	ShutdownGrace time.Duration
}

// DefaultOptions mirrors the limits used in production previews
func DefaultOptions() Options {
	return Options{
		Addr:          ":8080",
		RateCapacity:  60,
		RateRefill:    time.Minute,
		ShutdownGrace: 10 * time.Second,
	}
}

// NewMux wires the preview routes behind rate limiting and request ids
func NewMux(h *PreviewHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	limited := func(f http.HandlerFunc) http.Handler {
		return RequestIDMiddleware(RateLimitMiddleware(limiter, f))
	}

	mux.Handle("/preview/maturity", limited(h.Maturity))
	mux.Handle("/preview/simulate-closure", limited(h.SimulateClosure))
	mux.Handle("/preview/default-rate", limited(h.DefaultRate))
	mux.Handle("/preview/settings", limited(h.Settings))
	mux.Handle("/health", http.HandlerFunc(h.Health))

	return mux
}

// Run serves h until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, h *PreviewHandler, opts Options) error {
	limiter := NewRateLimiter(opts.RateCapacity, opts.RateRefill)
	defer limiter.Stop()

	server := &http.Server{
		Addr:         opts.Addr,
		Handler:      NewMux(h, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("preview API listening on %s", opts.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server exited")
	return nil
}
