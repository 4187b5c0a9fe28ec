// Command touchpointd runs the feedback engine against a synthetic
// desktop, driving the hardware emulator over UDP. Host integrations
// embed pkg/engine directly and supply real accessibility
// collaborators; this binary exists to exercise the full pipeline
// end to end without a host.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/touchpoint-hw/go-touchpoint/internal/config"
	"github.com/touchpoint-hw/go-touchpoint/internal/log"
	"github.com/touchpoint-hw/go-touchpoint/pkg/depth"
	"github.com/touchpoint-hw/go-touchpoint/pkg/engine"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML configuration (built-in defaults when empty)")
	emulatorAddr := flag.String("emulator", "", "Hardware emulator UDP address (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *emulatorAddr != "" {
		cfg.Hardware.Link = "udp"
		cfg.Hardware.Addr = *emulatorAddr
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	desktop := newSyntheticDesktop()
	eng, err := engine.New(cfg, engine.Collaborators{
		Pointer:  desktop,
		Resolver: desktop,
		Screen:   desktop,
		Grabber:  desktop,
		Convert:  depth.FromEncodedImage,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("touchpoint engine started",
		"link", cfg.Hardware.Link,
		"addr", cfg.Hardware.Addr,
		"tracker_period_ms", cfg.Tracker.PeriodMS,
	)

	// Sweep the pointer across the desktop so the emulator shows live
	// enter/leave transitions and elevation updates.
	go desktop.sweep(ctx, 25*time.Millisecond)

	if err := eng.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
