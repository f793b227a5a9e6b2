package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"VectorBoard/internal/board"
	"VectorBoard/internal/config"
	"VectorBoard/internal/logging"
	"VectorBoard/internal/net"
	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/ui"
)

var (
	configPath = flag.String("config", "", "Path to a TOML config file")
	debug      = flag.Bool("debug", false, "Show the spatial index quadrants")
	verbose    = flag.Bool("v", false, "Log debug messages")
	port       = flag.Int("port", 8888, "Port viewers connect to")
	browse     = flag.Bool("browse", false, "List boards on the local network and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [%shost:port]\n", os.Args[0], net.Scheme)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *browse:
		runBrowse(ctx)
	case flag.NArg() > 0:
		runViewer(ctx, cfg, flag.Arg(0))
	default:
		runHost(ctx, cfg)
	}
}

func runHost(ctx context.Context, cfg config.Config) {
	log.Println("Starting as HOST")
	b := board.New(cfg)
	widget := ui.NewBoardWidget(b)

	hub := net.NewHub()
	b.Collection().OnLocalOp = hub.Broadcast

	go func() {
		if err := net.Serve(ctx, fmt.Sprintf(":%d", *port), hub); err != nil {
			log.Printf("[HOST] Sharing disabled: %v", err)
			widget.SetStatus("Sharing disabled: " + err.Error())
		}
	}()

	server, err := net.Advertise(*port)
	if err != nil {
		log.Printf("[HOST] mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := net.GetOutgoingIP()
	if err != nil {
		log.Printf("[HOST] Could not find local IP: %v", err)
		hostIP = "127.0.0.1"
	}
	ui.RunApp(net.ShareLink(hostIP, *port), widget)
}

func runViewer(ctx context.Context, cfg config.Config, link string) {
	log.Println("Starting as VIEWER")
	url, err := net.DialURL(link)
	if err != nil {
		log.Fatal(err)
	}

	mirror := state.NewCollection(quadtree.Rect{W: cfg.CanvasWidth, H: cfg.CanvasHeight}, cfg.Capacity)
	widget := ui.NewViewerWidget(mirror)

	go func() {
		time.Sleep(500 * time.Millisecond) // Give UI time to launch
		widget.SetStatus("Following " + strings.TrimPrefix(link, net.Scheme))
		if err := net.Follow(ctx, url, widget.ApplyRemote); err != nil {
			widget.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
			return
		}
		widget.SetStatus("Disconnected from host")
	}()
	ui.RunApp("", widget)
}

func runBrowse(ctx context.Context) {
	found := 0
	err := net.Browse(ctx, func(addr string) {
		found++
		fmt.Println(net.Scheme + addr)
	})
	if err != nil {
		log.Fatal(err)
	}
	if found == 0 {
		log.Println("No boards found")
	}
}
