package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"mcpchat/internal/api"
)

func llmMain(root rootArgs, args []string) {
	if len(args) == 0 {
		args = []string{"show"}
	}
	var err error
	switch args[0] {
	case "show":
		err = runLLMShow(root, os.Stdout)
	case "set":
		err = runLLMSet(root, args[1:], os.Stdout)
	default:
		err = fmt.Errorf("unknown llm subcommand: %s (use show|set)", args[0])
	}
	if err != nil {
		log.Fatalf("llm %s: %v", args[0], err)
	}
}

func runLLMShow(root rootArgs, out io.Writer) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	resp, err := newClient(cfg).LLMConfig(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "type:    %s\n", resp.Config.Type)
	fmt.Fprintf(out, "model:   %s\n", resp.Config.Model)
	if resp.Config.BaseURL != "" {
		fmt.Fprintf(out, "base:    %s\n", resp.Config.BaseURL)
	}
	if resp.Config.APIBase != "" {
		fmt.Fprintf(out, "base:    %s\n", resp.Config.APIBase)
	}
	key := "not set"
	if resp.HasAPIKey {
		key = "set"
	}
	fmt.Fprintf(out, "api key: %s\n", key)
	return nil
}

func runLLMSet(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("llm set", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var llm api.LLMConfig
	fs.StringVar(&llm.Type, "type", "", "Provider type (e.g. ollama, openai)")
	fs.StringVar(&llm.Model, "model", "", "Model name")
	fs.StringVar(&llm.APIKey, "api-key", "", "Provider API key")
	fs.StringVar(&llm.BaseURL, "base-url", "", "Provider base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if llm.Type == "" || llm.Model == "" {
		return fmt.Errorf("usage: mcpchat llm set -type <type> -model <model> [-api-key key] [-base-url url]")
	}

	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	resp, err := newClient(cfg).SetLLMConfig(ctx, llm)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		fmt.Fprintln(out, resp.Message)
	} else {
		fmt.Fprintf(out, "saved %s/%s\n", resp.Config.Type, resp.Config.Model)
	}
	return nil
}
