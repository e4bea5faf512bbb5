package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"localllmui/internal/config"
	"localllmui/internal/httpapi"
	"localllmui/internal/llm"
	"localllmui/internal/logging"
	"localllmui/internal/ollama"
	"localllmui/internal/provision"
)

func serve(ctx context.Context, cfg config.Config) error {
	return runServe(ctx, cfg, nil)
}

// runServe provisions the model, then serves HTTP until ctx is canceled.
// onListen, when set, receives the bound address once the listener is open.
func runServe(ctx context.Context, cfg config.Config, onListen func(net.Addr)) error {
	log, closer, err := logging.New(logging.Options{
		File:      cfg.LogFile,
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	rt, client, err := buildRuntime(cfg, log)
	if err != nil {
		return err
	}
	defer client.CloseIdleConnections()

	log.Info().Str("model", cfg.Model).Str("probe", cfg.Probe).Str("ollama_host", client.Host()).Msg("provisioning model")
	handle, err := provision.New(rt, log).Resolve(ctx, cfg.Model)
	if err != nil {
		log.WithLevel(zerolog.FatalLevel).Err(err).Str("model", cfg.Model).Msg("model unavailable, exiting")
		return fmt.Errorf("provision %s: %w", cfg.Model, err)
	}

	mux := httpapi.NewMux(handle, httpapi.Options{
		Logger:       log,
		MaxBodyBytes: cfg.MaxBodyBytes,
		BaseContext:  ctx,
		CORS: httpapi.CORSOptions{
			Enabled:        cfg.CORSEnabled,
			AllowedOrigins: cfg.CORSOrigins,
		},
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	if onListen != nil {
		onListen(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("model", handle.Model()).Msg("localllmui listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

// buildRuntime wires the probe selected by cfg. Invocation always goes through
// the HTTP client; the CLI has no request/response mode.
func buildRuntime(cfg config.Config, log zerolog.Logger) (llm.Runtime, *ollama.Client, error) {
	keepAlive, err := cfg.KeepAliveDuration()
	if err != nil {
		return nil, nil, err
	}
	client, err := ollama.NewClient(ollama.ClientConfig{
		Host:        cfg.OllamaHost,
		Temperature: cfg.Temperature,
		KeepAlive:   keepAlive,
		Logger:      log,
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.Probe == config.ProbeCLI {
		cli := ollama.NewCLI(cfg.OllamaBin, cfg.OllamaHost, log)
		return llm.Combined{Prober: cli, Puller: cli, Invoker: client}, client, nil
	}
	return client, client, nil
}
