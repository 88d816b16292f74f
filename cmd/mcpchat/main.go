package main

import (
	"fmt"
	"os"

	"mcpchat/internal/api"
	"mcpchat/internal/history"
	"mcpchat/internal/logger"
	"mcpchat/internal/tui"
)

var log = logger.Named("main")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}
	logger.SetStreamLogger(logger.NewStreamLogger(logger.Root()))

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "ask":
			askMain(root, rest[1:])
			return
		case "mcp":
			mcpMain(root, rest[1:])
			return
		case "llm":
			llmMain(root, rest[1:])
			return
		case "sessions":
			sessionsMain(root, rest[1:])
			return
		case "config":
			configMain(root, rest[1:])
			return
		case "ping":
			pingMain(root, rest[1:])
			return
		}
	}

	runInteractive(root, rest)
}

func runInteractive(root rootArgs, args []string) {
	fs, cli := newInteractiveFlagSet("mcpchat")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}
	cli.finalizePrompt(fs)

	cfg, err := loadConfig(root, cli.configOverrides)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	mode := api.ParseMode(cfg.Mode)
	if cli.mode != "" {
		mode = api.ParseMode(cli.mode)
	}

	store, err := history.NewDefault()
	if err != nil {
		log.Warnf("prompt history unavailable: %v", err)
		store = nil
	}

	result, err := tui.Run(tui.Options{
		Client:        newClient(cfg),
		Mode:          mode,
		History:       store,
		InitialPrompt: cli.prompt,
	})
	if err != nil {
		log.Fatalf("program exit: %v", err)
	}
	if result.SessionID != "" {
		fmt.Printf("session: %s\n", result.SessionID)
	}
}
