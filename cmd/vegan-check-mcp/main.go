package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/vegan-check-mcp/internal/checker"
	"github.com/ironsheep/vegan-check-mcp/internal/classify"
	"github.com/ironsheep/vegan-check-mcp/internal/config"
	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
	"github.com/ironsheep/vegan-check-mcp/internal/ocr"
	"github.com/ironsheep/vegan-check-mcp/internal/reference"
	"github.com/ironsheep/vegan-check-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes of the check and scan commands.
const (
	exitVegan    = 0
	exitNotVegan = 1
	exitError    = 2
)

func usage() {
	fmt.Println("vegan-check-mcp - check ingredient lists for non-vegan E-numbers")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vegan-check-mcp [--config FILE]               Run the MCP server on stdin/stdout")
	fmt.Println("  vegan-check-mcp [--config FILE] check TEXT    Check ingredient text")
	fmt.Println("  vegan-check-mcp [--config FILE] scan IMAGE    Check a label photo with OCR")
	fmt.Println("  vegan-check-mcp [--config FILE] codes         Print the reference table")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config FILE    Read settings from FILE instead of vegan-check.yaml")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("check and scan exit 0 if vegan, 1 if not vegan, 2 on error.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  VEGAN_CHECK_LOG_LEVEL=debug       Enable debug logging")
	fmt.Println("  VEGAN_CHECK_OCR_BACKEND=cli       OCR backend (cli or gosseract)")
	fmt.Println("  VEGAN_CHECK_OCR_LANGUAGE=eng      Tesseract language")
	fmt.Println("  VEGAN_CHECK_REFERENCE_PATH=FILE   Replacement reference table")
	fmt.Println()
	fmt.Println("Without a command the server communicates via MCP protocol over stdin/stdout.")
}

func main() {
	args := os.Args[1:]

	var configFile string
	if len(args) > 0 {
		switch {
		case args[0] == "--version" || args[0] == "-v" || args[0] == "version":
			fmt.Printf("vegan-check-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case args[0] == "--help" || args[0] == "-h" || args[0] == "help":
			usage()
			return
		case args[0] == "--config":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "--config requires a file name")
				os.Exit(exitError)
			}
			configFile, args = args[1], args[2:]
		case strings.HasPrefix(args[0], "--config="):
			configFile, args = strings.TrimPrefix(args[0], "--config="), args[1:]
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Vegan Check MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if cfg.File != "" {
			log.Printf("Using config file %s", cfg.File)
		}
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}

	if len(args) == 0 {
		srv := server.New(server.Options{
			Pipeline: pipeline,
			OCR:      cfg.OCROptions(),
			Version:  Version,
		})
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	switch args[0] {
	case "check":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "check requires ingredient text")
			os.Exit(exitError)
		}
		os.Exit(report(pipeline.CheckText(strings.Join(args[1:], " "))))
	case "scan":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "scan requires one image path")
			os.Exit(exitError)
		}
		data, err := imaging.ReadFile(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitError)
		}
		os.Exit(report(pipeline.CheckImage(context.Background(), data, imaging.Selection{})))
	case "codes":
		for _, e := range pipeline.Table.Entries() {
			mark := "vegan"
			if !e.Vegan {
				mark = "not vegan"
			}
			fmt.Printf("%-6s %-10s %s\n", e.Code, mark, e.Name)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, see --help\n", args[0])
		os.Exit(exitError)
	}
}

// newPipeline builds the checker from cfg. A missing OCR backend is logged
// and leaves image checks failing; text checks still work.
func newPipeline(cfg *config.Config) (*checker.Pipeline, error) {
	var (
		table *reference.Table
		err   error
	)
	if cfg.Reference.Path != "" {
		table, err = reference.Open(cfg.Reference.Path)
	} else {
		table, err = reference.Default()
	}
	if err != nil {
		return nil, err
	}

	p := &checker.Pipeline{
		Table:     table,
		Extractor: cfg.Extractor(),
		Debug:     cfg.Debug(),
	}

	factory, err := ocr.NewFactory(cfg.OCROptions())
	switch {
	case err == nil:
		p.OCR = factory
	case errors.Is(err, ocr.ErrNotAvailable):
		log.Printf("Warning: OCR unavailable, image checks disabled: %v", err)
	default:
		return nil, err
	}
	return p, nil
}

// report prints a check outcome and returns the process exit code.
func report(r *checker.Report, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, checker.UserMessage(err))
		log.Printf("Check failed: %v", err)
		return exitError
	}

	for _, a := range r.Result.Codes {
		mark := "vegan"
		switch {
		case !a.Known:
			mark = "unknown"
		case !a.Vegan:
			mark = "not vegan"
		}
		fmt.Printf("%-6s %-10s %s\n", a.Code, mark, a.Name)
	}

	if r.Result.Verdict == classify.AllVegan {
		fmt.Println("All E-numbers are vegan.")
		return exitVegan
	}
	fmt.Println("Not all E-numbers are vegan.")
	return exitNotVegan
}
