// Package main runs the persona chat bot against a console gateway.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kireev-dev/personabot/internal/catalog"
	"github.com/kireev-dev/personabot/internal/chat"
	"github.com/kireev-dev/personabot/internal/config"
	"github.com/kireev-dev/personabot/internal/emotion"
	"github.com/kireev-dev/personabot/internal/llm"
	"github.com/kireev-dev/personabot/internal/session"
	"github.com/kireev-dev/personabot/internal/storage"
)

// The console gateway addresses a single local user.
const consoleUserID = 1

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nshutting down...")
		cancel()
		os.Exit(0)
	}()

	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create completion provider", zap.Error(err))
	}

	pool, err := catalog.NewPool()
	if err != nil {
		logger.Fatal("failed to load character catalog", zap.Error(err))
	}

	svc := chat.NewService(chat.Deps{
		Catalog:    pool,
		Characters: storage.NewCharacterStore(db),
		States:     storage.NewStateStore(db),
		Sessions:   sessions,
		Provider:   provider,
		Gateway:    chat.NewConsoleGateway(os.Stdout),
		Scorer:     emotion.NewScorer(),
		Logger:     logger,
	}, chat.Options{
		Temperature: cfg.LLMTemperature,
		TopP:        cfg.LLMTopP,
		MaxTokens:   cfg.LLMMaxTokens,
		AdminID:     cfg.AdminID,
	})

	logger.Info("bot ready", zap.String("provider", cfg.LLMProvider))
	runConsole(ctx, svc, logger)
}

func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return llm.NewGeminiProvider(ctx, llm.GeminiConfig{
			APIKey: cfg.LLMAPIKey,
			Model:  cfg.LLMModel,
		})
	case "openai":
		return llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.LLMProvider)
	}
}

// runConsole reads commands and chat messages from stdin until EOF.
func runConsole(ctx context.Context, svc *chat.Service, logger *zap.Logger) {
	fmt.Println("Commands: /characters /select <id> /create /reset /stats /nsfw /share <id> /delete <id> /pending /approve <id> /reject <id>")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatch(ctx, svc, line); err != nil {
			logger.Error("command failed", zap.String("input", line), zap.Error(err))
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", zap.Error(err))
	}
}

func dispatch(ctx context.Context, svc *chat.Service, line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/characters":
		chars, err := svc.ListCharacters(ctx, consoleUserID)
		if err != nil {
			return err
		}
		for _, c := range chars {
			marker := ""
			if c.NSFW {
				marker = " (18+)"
			}
			fmt.Printf("%s - %s%s\n", c.ID, c.Name, marker)
		}
		return nil
	case "/select":
		return printResult(svc.Select(ctx, consoleUserID, arg))
	case "/create":
		return printResult(svc.StartCreation(ctx, consoleUserID))
	case "/reset":
		return printResult(svc.Reset(ctx, consoleUserID))
	case "/stats":
		return printResult(svc.CurrentStatus(ctx, consoleUserID))
	case "/nsfw":
		return printResult(svc.ToggleNSFW(ctx, consoleUserID))
	case "/share":
		return printResult(svc.RequestPublic(ctx, consoleUserID, arg))
	case "/delete":
		return printResult(svc.DeleteCharacter(ctx, consoleUserID, arg))
	case "/pending":
		chars, err := svc.ListPending(ctx, consoleUserID)
		if err != nil {
			return err
		}
		for _, c := range chars {
			fmt.Printf("%s - %s (by %d)\n", c.ID, c.Name, c.CreatorID)
		}
		return nil
	case "/approve":
		return printResult(svc.Approve(ctx, consoleUserID, arg))
	case "/reject":
		return printResult(svc.Reject(ctx, consoleUserID, arg))
	default:
		return svc.HandleMessage(ctx, consoleUserID, line)
	}
}

func printResult(msg string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
