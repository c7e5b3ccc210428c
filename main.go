package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/arundhs/travelagent/bootstrap"
	"github.com/arundhs/travelagent/cli"
	"github.com/arundhs/travelagent/config"
	reqcontext "github.com/arundhs/travelagent/context"
	"github.com/arundhs/travelagent/log"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	query := flag.String("query", "", "Single query to process (non-interactive mode)")
	flag.StringVar(query, "q", "", "Shorthand for -query")
	dryRun := flag.Bool("dry-run", false, "Enable dry-run mode (bookings will be simulated)")
	model := flag.String("model", "", "Groq model to use (default: from GROQ_MODEL_ID)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	if *noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		cli.DisableColors()
	}

	log.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		<-sigChan
		cli.PrintGoodbye()
		cancel()
		os.Exit(0)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(ctx, "Failed to load config: %v", err)
	}

	// CLI arguments override config
	if *dryRun {
		cfg.DryRun = true
	}
	if *model != "" {
		cfg.Groq.Model = *model
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println()
		fmt.Printf("  Configuration error: %v\n", err)
		fmt.Println("  Get your free API key at: https://console.groq.com")
		fmt.Println()
		os.Exit(1)
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}

	if *query != "" {
		os.Exit(singleQueryMode(ctx, app, *query))
	}
	interactiveMode(ctx, app)
}

// singleQueryMode processes one query and exits with a status code.
func singleQueryMode(ctx context.Context, app *bootstrap.App, query string) int {
	if app.DryRun {
		cli.PrintDryRunNotice()
	}

	fmt.Println()
	fmt.Println("  Query:")
	fmt.Printf("  %s\n", query)
	fmt.Println()

	ctx, _ = reqcontext.EnsureRequestID(ctx)
	resp, err := app.TravelAgent.ProcessRequest(ctx, query)
	if err != nil {
		cli.PrintResponse(resp)
		return 1
	}

	cli.PrintResponse(resp)
	if resp.Success {
		return 0
	}
	return 1
}

// interactiveMode runs the conversational loop until quit/exit.
func interactiveMode(ctx context.Context, app *bootstrap.App) {
	cli.PrintBanner()
	cli.PrintCapabilities()
	cli.PrintCommands()

	if app.DryRun {
		cli.PrintDryRunNotice()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("  You: ")
		if !scanner.Scan() {
			cli.PrintGoodbye()
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			cli.PrintGoodbye()
			return
		case "reset":
			app.TravelAgent.Reset()
			fmt.Println()
			fmt.Println("  Conversation reset. Starting fresh!")
			fmt.Println()
			continue
		case "help":
			cli.PrintTips()
			continue
		}

		fmt.Println()
		fmt.Println("  Processing your request...")

		reqCtx := reqcontext.WithRequestID(ctx, reqcontext.NewRequestID())
		resp, err := app.TravelAgent.ProcessRequest(reqCtx, input)
		if err != nil {
			log.Errorf(reqCtx, "Request failed: %v", err)
		}
		if resp != nil {
			cli.PrintResponse(resp)
		}
	}
}
