package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/handiism/arcade-catalog/internal/announce"
	"github.com/handiism/arcade-catalog/internal/catalog"
	"github.com/handiism/arcade-catalog/internal/config"
	"github.com/handiism/arcade-catalog/internal/meta"
	"github.com/handiism/arcade-catalog/internal/model"
	"github.com/handiism/arcade-catalog/internal/predict"
)

func main() {
	var (
		seedFlag     = flag.String("week-seed", "", "Week seed (YYYYWW) to use instead of the current week")
		nextWeekFlag = flag.Bool("next-week", false, "Use next week's seed")
		serviceFlag  = flag.String("service", announce.ServiceOpenAI, "AI service: openai or claude")
		updateFlag   = flag.Bool("update-metadata", false, "Write the announcement back into metadata.yaml")
		dryRunFlag   = flag.Bool("dry-run", false, "Print the prompt without calling any API")
	)

	flag.Parse()

	if *seedFlag != "" && *nextWeekFlag {
		fatal(fmt.Errorf("cannot combine -week-seed and -next-week"))
	}

	settings, err := config.Load()
	if err != nil {
		fatal(err)
	}

	now := time.Now()
	seed := predict.CurrentSeed(now)
	if *nextWeekFlag {
		seed = predict.NextSeed(now)
	} else if *seedFlag != "" {
		seed = *seedFlag
	}
	fmt.Printf("Week seed: %s\n", seed)

	schedule := predict.LoadSchedule(settings.PredictionsPath())
	prediction, ok := schedule.BySeed(seed)
	if !ok {
		fatal(fmt.Errorf("no prediction found for seed %s", seed))
	}

	gameID := prediction.GameID
	if gameID == "" {
		gameID = resolveTitle(settings, prediction.Title)
	}
	if gameID == "" {
		fatal(fmt.Errorf("could not resolve a game id for %q", prediction.Title))
	}

	resolver := meta.NewResolver(settings.GamesDir())
	record, found := resolver.Resolve(gameID)
	if !found {
		fatal(fmt.Errorf("no metadata for game %s", gameID))
	}

	title := record.Title
	if title == "" {
		title = prediction.Title
	}
	fmt.Printf("Game of the week: %s (%s)\n", gameID, title)

	if record.AnnouncementMessage != "" && !*dryRunFlag {
		fmt.Printf("Existing announcement: %s\n", record.AnnouncementMessage)
		if !confirm("Replace it? (y/N): ") {
			fmt.Println("Keeping existing announcement.")
			return
		}
	}

	prompt := announce.BuildPrompt(title, record)

	if *dryRunFlag {
		fmt.Println("\n[Dry run] Prompt that would be sent:")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Println(prompt)
		fmt.Println(strings.Repeat("-", 50))
		return
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if *serviceFlag == announce.ServiceClaude {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	generator, err := announce.NewGenerator(*serviceFlag, apiKey)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	message, err := generator.Generate(ctx, prompt)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("\nGenerated announcement:\n%s\n", message)

	if *updateFlag {
		if err := announce.UpdateMetadata(resolver.Path(gameID), message); err != nil {
			fatal(err)
		}
		fmt.Println("Updated metadata.")
	} else {
		fmt.Println("\nRun with -update-metadata to write it into metadata.yaml, or add manually:")
		fmt.Printf("  announcement_message: %q\n", message)
	}
}

// resolveTitle matches a legacy title-only prediction against the
// published catalog.
func resolveTitle(settings *config.Settings, title string) string {
	data, err := os.ReadFile(settings.GamelistPath())
	if err != nil {
		return ""
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return ""
	}
	return catalog.FindByTitle(cat.Games, title)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
