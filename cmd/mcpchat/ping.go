package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		log.Fatalf("ping failed: %v", err)
	}
}

// runPing 探活后端：请求注册表端点并报告可用的工具服务器数量。
func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var baseURLOverride string
	var timeoutSeconds int
	fs.StringVar(&baseURLOverride, "base-url", "", "Override backend base URL")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "Timeout seconds (default 10)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(baseURLOverride) != "" {
		cfg.BaseURL = strings.TrimSpace(baseURLOverride)
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	client := newClient(cfg)
	started := time.Now()
	resp, err := client.MCPServers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ok: %s (%d MCP servers, %dms)\n",
		client.BaseURL(), len(resp.Servers), time.Since(started).Milliseconds())
	return nil
}
