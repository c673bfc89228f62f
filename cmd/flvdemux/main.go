// If you are AI: This is the main entrypoint for the flvdemux tool.
// It handles configuration loading, batch probing, server startup, and graceful shutdown.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"flvdemux/internal/config"
	"flvdemux/internal/logging"
	"flvdemux/internal/probe"
	"flvdemux/internal/server"

	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdout io.Writer) int {
	a := kingpin.New(filepath.Base(os.Args[0]), "FLV stream demuxer")
	a.HelpFlag.Short('h')
	configPath := a.Flag("config", "Path to configuration file (.yaml or .toml)").Short('c').String()

	probeCmd := a.Command("probe", "Demux FLV files and report their structure.")
	probeFiles := probeCmd.Arg("files", "FLV files to probe.").Required().ExistingFiles()
	probeWorkers := probeCmd.Flag("workers", "Files probed in parallel.").Short('w').Int()
	probeMetadata := probeCmd.Flag("metadata", "Decode onMetaData.").Bool()
	probeJSON := probeCmd.Flag("json", "Print one JSON report per line.").Bool()

	serveCmd := a.Command("serve", "Serve HTTP and WebSocket demux endpoints.")
	servePort := serveCmd.Flag("port", "HTTP port, overrides the configuration.").Short('p').Int()

	command, err := a.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flvdemux: %v\n", err)
		return 2
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flvdemux: failed to load config: %v\n", err)
		return 1
	}
	if *probeWorkers > 0 {
		cfg.Probe.Workers = *probeWorkers
	}
	if *probeMetadata {
		cfg.Probe.Metadata = true
	}
	if *servePort > 0 {
		cfg.Server.HTTPPort = *servePort
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "flvdemux: invalid config: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
		MaxSize:     cfg.Log.MaxSize,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAge:      cfg.Log.MaxAge,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "flvdemux: failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	switch command {
	case probeCmd.FullCommand():
		return runProbe(cfg, logger, *probeFiles, *probeJSON, stdout)
	case serveCmd.FullCommand():
		return runServe(cfg, logger)
	}
	return 2
}

// runProbe probes files and prints one report each. Returns 1 if any file failed.
func runProbe(cfg *config.Config, logger *zap.Logger, files []string, asJSON bool, stdout io.Writer) int {
	p := probe.New(probe.Options{
		Workers:   cfg.Probe.Workers,
		ChunkSize: cfg.Demux.ChunkSize,
		Metadata:  cfg.Probe.Metadata,
	}, logger, nil)

	reports, err := p.Run(context.Background(), files)
	if err != nil {
		logger.Error("probe failed", zap.Error(err))
		return 1
	}

	code := 0
	enc := json.NewEncoder(stdout)
	for i := range reports {
		rep := &reports[i]
		if !rep.OK() {
			code = 1
		}
		if asJSON {
			if err := enc.Encode(rep); err != nil {
				logger.Error("write report", zap.Error(err))
				return 1
			}
			continue
		}
		printReport(stdout, rep)
	}
	return code
}

// printReport writes a human-readable report.
func printReport(w io.Writer, rep *probe.Report) {
	fmt.Fprintf(w, "%s\n", rep.Path)
	if rep.Header != nil {
		fmt.Fprintf(w, "  header: version %d, audio %t, video %t, data offset %d\n",
			rep.Header.Version, rep.Header.HasAudio, rep.Header.HasVideo, rep.Header.DataOffset)
	}
	types := make([]string, 0, len(rep.Tags))
	for t := range rep.Tags {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %s tags: %d\n", t, rep.Tags[t])
	}
	fmt.Fprintf(w, "  bytes: %d, last timestamp: %d ms\n", rep.Bytes, rep.Duration)
	if md := rep.Metadata; md != nil {
		fmt.Fprintf(w, "  metadata: duration %.3fs, %gx%g @ %g fps\n", md.Duration, md.Width, md.Height, md.FrameRate)
	}
	if rep.Err != nil {
		fmt.Fprintf(w, "  error: %s\n", rep.Error)
	}
}

// runServe starts the server and blocks until shutdown.
func runServe(cfg *config.Config, logger *zap.Logger) int {
	srv := server.New(cfg, logger)
	shutdownHandler := server.NewShutdownHandler(context.Background(), srv)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	waitCh := make(chan error, 1)
	go func() { waitCh <- shutdownHandler.Wait() }()

	select {
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		return 1
	case err := <-waitCh:
		if err != nil {
			logger.Error("shutdown error", zap.Error(err))
			return 1
		}
	}

	logger.Info("server shut down cleanly")
	return 0
}
