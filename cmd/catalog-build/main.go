package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/handiism/arcade-catalog/internal/catalog"
	"github.com/handiism/arcade-catalog/internal/config"
	"github.com/handiism/arcade-catalog/internal/manifest"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func main() {
	var (
		sequentialFlag = flag.Bool("sequential", false, "Process entries in one sequential pass")
		workersFlag    = flag.Int("workers", 0, "Worker count for the parallel pass (overrides ARCADE_WORKERS)")
		manifestFlag   = flag.String("manifest", "", "Manifest source: URL or local file (overrides ARCADE_MANIFEST)")
		dryRunFlag     = flag.Bool("dry-run", false, "Assemble and validate without writing artifacts")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	settings, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *manifestFlag != "" {
		settings.Manifest = *manifestFlag
	}
	if *workersFlag > 0 {
		settings.Workers = *workersFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	fmt.Println(headerStyle.Render("Arcade catalog build"))

	source := manifest.NewSource(settings)
	entries, err := source.List(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Manifest: %d entries\n", len(entries))

	asm := catalog.NewAssembler(settings, time.Now())
	asm.Sequential = *sequentialFlag

	result, err := asm.Assemble(ctx, entries)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("Build cancelled.")
			os.Exit(130)
		}
		fatal(err)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not publishing]")
	} else if err := asm.Publish(result); err != nil {
		fatal(err)
	}

	fmt.Println()
	fmt.Println(okStyle.Render(fmt.Sprintf("Assembled %d games", len(result.Catalog.Games))))
	if len(result.Skips) > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Skipped %d entries:", len(result.Skips))))
		for _, skip := range result.Skips {
			fmt.Printf("  %s: %s\n", skip.ID, skip.Reason)
		}
	}
	if result.CurrentGameID != "" {
		fmt.Printf("Current game: %s\n", result.CurrentGameID)
	} else {
		fmt.Println("Current game: none scheduled")
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
