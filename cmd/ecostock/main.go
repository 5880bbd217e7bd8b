package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecostock/ecostock/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "demo":
		err = runDemo(ctx, os.Args[2:])
	case "help", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		configFile  = fs.String("config", "", "Path to YAML config file")
		addr        = fs.String("addr", "", "Listen address (overrides config)")
		scenarioDir = fs.String("scenario", "", "Directory of CSV files to load instead of seed data")
		watch       = fs.Bool("watch", false, "Reload config when the file changes")
		verbose     = fs.Bool("verbose", false, "Enable debug logging")
		help        = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewServeCommand(commands.ServeConfig{
		ConfigFile:  *configFile,
		Addr:        *addr,
		ScenarioDir: *scenarioDir,
		Watch:       *watch,
		Verbose:     *verbose,
		Help:        *help,
	})
	return cmd.Execute(ctx)
}

func runDemo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var (
		format    = fs.String("format", "text", "Output format: text, json, csv")
		outputDir = fs.String("output", "", "Output directory for json/csv reports")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewDemoCommand(commands.DemoConfig{
		Format:    *format,
		OutputDir: *outputDir,
		Verbose:   *verbose,
		Help:      *help,
	})
	return cmd.Execute(ctx)
}

func printUsage() {
	fmt.Println(`ecostock - sustainable inventory optimization engine

Usage:
  ecostock <command> [flags]

Commands:
  serve   Run the HTTP API server
  demo    Run a scripted walkthrough on the built-in network
  help    Show this help message

Run "ecostock <command> -help" for command flags.`)
}
