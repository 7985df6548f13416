package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/logger"
	"github.com/ironsheep/photo-watermark-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("photo-watermark-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "compose":
			os.Exit(runCompose(os.Args[2:]))
		}
	}

	fs := flag.NewFlagSet("photo-watermark-mcp", flag.ExitOnError)
	fs.Usage = usage
	configPath := fs.String("config", "", "YAML configuration file")
	_ = fs.Parse(os.Args[1:])

	log, srv, err := setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photo-watermark-mcp: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Debug("server starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	if err := srv.Run(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// runCompose is the one-shot CLI path: compose a single photo and exit.
func runCompose(args []string) int {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	in := fs.String("in", "", "input photo path (required)")
	out := fs.String("out", "", "output path (default: <in>_watermark next to the input)")
	layoutID := fs.String("layout", "", "layout id (default: layout.type from the configuration)")
	quality := fs.Int("quality", 0, "JPEG quality 1..100 (default: base.quality from the configuration)")
	configPath := fs.String("config", "", "YAML configuration file")
	_ = fs.Parse(args)

	if *in == "" {
		fs.Usage()
		return 2
	}

	log, srv, err := setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compose: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	res, err := srv.Compose(log, server.ComposeArgs{
		Path:    *in,
		Layout:  *layoutID,
		Output:  *out,
		Quality: *quality,
	})
	if err != nil {
		log.Error("compose failed", zap.String("path", *in), zap.Error(err))
		return 1
	}

	fmt.Printf("%s (%dx%d, layout %s)\n", res.Output, res.Width, res.Height, res.Layout)
	return 0
}

func setup(configPath string) (*zap.Logger, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	// Logs go to stderr: stdout is for the MCP protocol.
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	server.Version = Version
	srv, err := server.New(cfg, server.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return log, srv, nil
}

func usage() {
	fmt.Println("photo-watermark-mcp - MCP server that frames photos with camera watermarks")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  photo-watermark-mcp [--config file.yaml]")
	fmt.Println("  photo-watermark-mcp compose -in photo.jpg [-out out.jpg] [-layout id] [-quality n] [-config file.yaml]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  --config         YAML configuration file")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  WATERMARK_LAYOUT=<id>         Default layout")
	fmt.Println("  WATERMARK_LOGO_DIR=<dir>      Directory of camera make logos")
	fmt.Println("  WATERMARK_FONT=<file.ttf>     Regular font")
	fmt.Println("  WATERMARK_LOG_LEVEL=debug     Enable debug logging")
	fmt.Println()
	fmt.Println("Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
