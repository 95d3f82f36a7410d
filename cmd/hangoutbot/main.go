package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/avvvet/hangoutbot/internal/app"
	"github.com/avvvet/hangoutbot/internal/config"
	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/avvvet/hangoutbot/internal/intent"
	"github.com/avvvet/hangoutbot/internal/logger"
	"github.com/avvvet/hangoutbot/internal/models"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	scorerFlag string
	venuesFlag string
	corpusFlag string
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hangoutbot",
		Short: "Hangout venue chatbot",
		Long:  `Local tools for the hangout venue chatbot: an interactive chat loop and an intent classifier probe`,
	}
	rootCmd.PersistentFlags().StringVar(&scorerFlag, "scorer", "", "similarity strategy: lexical or embedding (overrides SCORER_STRATEGY)")
	rootCmd.PersistentFlags().StringVar(&venuesFlag, "venues", "", "venue CSV file (overrides VENUE_CSV_PATH)")
	rootCmd.PersistentFlags().StringVar(&corpusFlag, "corpus", "", "intent corpus YAML (overrides CORPUS_PATH)")

	rootCmd.AddCommand(createChatCmd())
	rootCmd.AddCommand(createClassifyCmd())
	rootCmd.AddCommand(createCorpusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if scorerFlag != "" {
		cfg.ScorerStrategy = scorerFlag
	}
	if venuesFlag != "" {
		cfg.VenueSource = config.VenueSourceCSV
		cfg.VenueCSVPath = venuesFlag
	}
	if corpusFlag != "" {
		cfg.CorpusPath = corpusFlag
	}
	// one user at the terminal
	cfg.SessionBackend = config.SessionBackendLocal
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	return cfg
}

// createChatCmd creates the interactive chat loop
func createChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot on the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			zapLog := logger.New(cfg.LogLevel, cfg.LogFormat)
			defer zapLog.Sync()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			bot, err := app.New(ctx, cfg, zapLog)
			if err != nil {
				log.Fatalf("Failed to initialize: %v", err)
			}
			defer bot.Close()

			if err := runChat(ctx, bot, uuid.NewString(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				log.Fatalf("Chat failed: %v", err)
			}
		},
	}
}

// runChat reads one message per line until EOF or an empty line. "/reset"
// drops the running interview. The session is cleared on the way out.
func runChat(ctx context.Context, bot *app.App, sessionID string, in io.Reader, out io.Writer) error {
	defer func() {
		if err := bot.Sessions.ClearSession(ctx, sessionID); err != nil {
			log.Printf("Failed to clear session: %v", err)
		}
	}()

	fmt.Fprintf(out, "session %s, /reset to start over, empty line or Ctrl-D to quit\n", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if line == "/reset" {
			running, err := bot.Sessions.SessionExists(ctx, sessionID)
			if err != nil {
				return fmt.Errorf("failed to check session: %w", err)
			}
			if err := bot.Sessions.ClearSession(ctx, sessionID); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
			fmt.Fprintf(out, "[reset, interview was running: %t]\n", running)
			continue
		}

		resp := bot.Handler.Reply(ctx, &models.ChatRequest{SessionID: sessionID, UserID: "cli", Message: line})
		fmt.Fprintf(out, "%s\n[%s · %s]\n", resp.Reply, resp.Intent, resp.Stage)
	}
	return scanner.Err()
}

// createClassifyCmd prints how each argument is classified
func createClassifyCmd() *cobra.Command {
	var inDialogue bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Show the intent and best match for each text",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			zapLog := logger.New(cfg.LogLevel, cfg.LogFormat)
			defer zapLog.Sync()

			registry := mustRegistry(cfg)
			scorer, err := app.NewScorer(cmd.Context(), cfg, registry, zapLog)
			if err != nil {
				log.Fatalf("Failed to build scorer: %v", err)
			}

			classifier := intent.NewClassifier(registry, scorer, zapLog)
			for _, text := range args {
				c := classifier.Classify(cmd.Context(), text, inDialogue)
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s intent=%-12s match=%q score=%.3f confident=%t direct=%t\n",
					text, c.Intent, c.Match.Phrase, c.Match.Score, c.Confident, c.Direct)
			}
		},
	}
	cmd.Flags().BoolVar(&inDialogue, "in-dialogue", false, "classify as if a recommendation interview were running")
	return cmd
}

// createCorpusCmd dumps the loaded corpus
func createCorpusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpus",
		Short: "List intents and their example phrases",
		Run: func(cmd *cobra.Command, args []string) {
			registry := mustRegistry(loadConfig())
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "corpus version %d\n", registry.Version())
			for _, c := range registry.Corpora() {
				fmt.Fprintf(out, "%s (%d): %s\n", c.Tag, len(c.Phrases), strings.Join(c.Phrases, ", "))
			}
			fmt.Fprintf(out, "listing (%d): %s\n", len(registry.Listing()), strings.Join(registry.Listing(), ", "))
		},
	}
}

func mustRegistry(cfg *config.Config) *corpus.Registry {
	registry, err := app.LoadRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	return registry
}
