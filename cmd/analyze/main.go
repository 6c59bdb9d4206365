// Package main provides a one-shot batch analysis of a challenge thread.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/config"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/hivetime"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/hiveurl"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/logging"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/service"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

func main() {
	var (
		postURL       = flag.String("post", "", "post URL (peakd/hive.blog/ecency)")
		author        = flag.String("author", "", "post author (alternative to -post)")
		permlink      = flag.String("permlink", "", "post permlink (alternative to -post)")
		startStr      = flag.String("start", "", "window start, RFC3339 (e.g. 2025-09-01T00:00:00Z)")
		endStr        = flag.String("end", "", "window end, RFC3339")
		minPowerUp    = flag.String("min", service.DefaultMinimumPowerUp.String(), "minimum aggregate power-up in HIVE")
		requireImages = flag.Bool("require-images", false, "require valid image attachments")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.FormatText)
	logger := logging.GetGlobalLogger()

	a, p := *author, *permlink
	if *postURL != "" {
		ref, err := hiveurl.ParsePostURL(*postURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid post URL: %v\n", err)
			os.Exit(1)
		}
		a, p = ref.Author, ref.Permlink
	}
	if a == "" || p == "" {
		fmt.Fprintln(os.Stderr, "either -post or both -author and -permlink are required")
		os.Exit(1)
	}

	start, err := time.Parse(time.RFC3339, *startStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start: %v\n", err)
		os.Exit(1)
	}
	end, err := time.Parse(time.RFC3339, *endStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -end: %v\n", err)
		os.Exit(1)
	}

	threshold, err := decimal.NewFromString(*minPowerUp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -min: %v\n", err)
		os.Exit(1)
	}

	hiveClient := adapter.NewHiveClient(&cfg.Hive)
	hafahClient := adapter.NewHafahClient(&cfg.Hafah)
	scanner := service.NewPowerUpScanner(hafahClient, logger)
	classifier := service.NewParticipantClassifier(scanner, logger)
	analyzer := service.NewAnalyzer(hiveClient, classifier, nil, logger)

	input := service.AnalyzeInput{
		Author:        a,
		Permlink:      p,
		Range:         types.DateRange{StartDate: start, EndDate: end},
		MinPowerUp:    threshold,
		RequireImages: *requireImages,
		OnProgress: func(processed, total int) {
			fmt.Fprintf(os.Stderr, "\rprocessing comments %d/%d", processed, total)
		},
	}

	analysis, err := analyzer.Analyze(context.Background(), input)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Post: %s\n", hiveurl.BuildPeakdURL(a, p))
	fmt.Printf("Window: %s - %s\n", hivetime.FormatHuman(start), hivetime.FormatHuman(end))
	fmt.Printf("Comments analyzed: %d\n\n", analysis.TotalComments)

	fmt.Printf("Valid participants (%d):\n", len(analysis.ValidUsers))
	for _, user := range analysis.ValidUsers {
		fmt.Printf("  %-20s total %s HIVE (%d tx, first %s)", user.Name, user.TotalPowerUp, len(user.PowerUpTransactions), user.PowerUpDate)
		if user.CommentCount > 1 {
			fmt.Printf(" [%d comments]", user.CommentCount)
		}
		fmt.Println()
	}

	fmt.Printf("\nInvalid participants (%d):\n", len(analysis.InvalidUsers))
	for _, user := range analysis.InvalidUsers {
		fmt.Printf("  %-20s %s", user.Name, user.Reason)
		if user.CommentCount > 1 {
			fmt.Printf(" [%d comments]", user.CommentCount)
		}
		fmt.Println()
	}

	fmt.Printf("\nIgnored accounts (%d):\n", len(analysis.IgnoredUsers))
	for _, name := range analysis.IgnoredUsers {
		fmt.Printf("  %s\n", name)
	}
}
