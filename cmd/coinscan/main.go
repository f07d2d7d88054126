package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/ironsheep/coinscan/internal/capture"
	"github.com/ironsheep/coinscan/internal/classify"
	"github.com/ironsheep/coinscan/internal/config"
	"github.com/ironsheep/coinscan/internal/locale"
	"github.com/ironsheep/coinscan/internal/scan"
	"github.com/ironsheep/coinscan/internal/server"
	"github.com/ironsheep/coinscan/internal/settings"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("coinscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Logging goes to stderr (stdout carries the protocol stream)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := run(); err != nil {
		log.Fatalf("coinscan: %v", err)
	}
}

func printHelp() {
	fmt.Println("coinscan - Euro coin scanner for a single scan station")
	fmt.Println()
	fmt.Println("Usage: coinscan [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  (none)           Serve scan tools over JSON-RPC on stdin/stdout")
	fmt.Println("  scan             Run one scan pass and print the result")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  COINSCAN_SNAPSHOT_URL    HTTP snapshot endpoint (default: local device)")
	fmt.Println("  COINSCAN_DEVICE          Local capture device index (default 0)")
	fmt.Println("  COINSCAN_HOLD_DEVICE     Keep the device open between scans")
	fmt.Println("  COINSCAN_RESOLUTION      Capture preset: small, scan, large (default: persisted webcam_size)")
	fmt.Println("  COINSCAN_SCAN_TIMEOUT    Per-scan deadline (default 5s)")
	fmt.Println("  COINSCAN_RULES           YAML denomination table (default: built-in Euro)")
	fmt.Println("  COINSCAN_CENTRE_ONLY     Classify only the central frame region")
	fmt.Println("  COINSCAN_LANG            Override the persisted language (en, de)")
	fmt.Println("  COINSCAN_SETTINGS        Settings file or directory override")
	fmt.Println("  COINSCAN_LOG_LEVEL=debug Enable debug logging")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	prefs := settings.Load(settings.DefaultPath())

	lang := locale.Normalize(prefs.Language)
	if cfg.Language != "" {
		lang = locale.Normalize(cfg.Language)
	}

	if cfg.LogLevel == "debug" {
		log.Printf("coinscan v%s (built %s, commit %s), lang=%s", Version, BuildTime, GitCommit, lang)
	}

	rules, err := cfg.LoadRules()
	if err != nil {
		return err
	}

	opts := []classify.Option{}
	if cfg.CentreOnly {
		opts = append(opts, classify.WithCenterCrop())
	}
	classifier, err := classify.New(rules, opts...)
	if err != nil {
		return err
	}

	// The env preset wins; the persisted webcam_size preference is the
	// fallback for stations configured through the settings file.
	resName := cfg.Resolution
	if resName == "" {
		resName = prefs.WebcamSize
	}
	if resName == "" {
		resName = "scan"
	}
	res, ok := capture.Preset(resName)
	if !ok {
		return fmt.Errorf("unknown resolution preset %q", resName)
	}

	src, cleanup := newSource(cfg)
	defer cleanup()

	scanner := scan.New(src, classifier, res, cfg.ScanTimeout)

	if len(os.Args) > 1 && os.Args[1] == "scan" {
		return runOnce(scanner, lang)
	}

	srv := server.New(scanner, classifier, lang, os.Stdin, os.Stdout)
	return srv.Run()
}

// newSource picks the capture backend: the HTTP snapshot endpoint when one
// is configured, the local device otherwise.
func newSource(cfg *config.Config) (capture.Source, func()) {
	if cfg.SnapshotURL != "" {
		return capture.NewSnapshotSource(cfg.SnapshotURL, cfg.ScanTimeout), func() {}
	}
	dev := capture.NewDeviceSource(cfg.Device, cfg.HoldDevice)
	return dev, func() {
		if err := dev.Close(); err != nil {
			log.Printf("failed to release capture device: %v", err)
		}
	}
}

// runOnce performs a single scan pass and prints the localized result rows,
// mirroring what the scan station UI would display.
func runOnce(scanner *scan.Scanner, lang string) error {
	result, err := scanner.Scan(context.Background())
	if err != nil {
		return err
	}

	strs := locale.Get(lang)
	if len(result.Coins) == 0 {
		fmt.Println(strs.NoCoin)
	}
	for _, coin := range result.Coins {
		fmt.Println(locale.FormatCoin(lang, coin.Label, coin.ValueCents))
	}
	fmt.Println(locale.FormatTotal(lang, result.TotalCents))
	return nil
}
