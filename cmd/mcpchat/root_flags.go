package main

import (
	"flag"

	"mcpchat/internal/api"
	"mcpchat/internal/config"
)

type rootArgs struct {
	cfgPath   string
	overrides []string
}

func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("mcpchat", flag.ContinueOnError)
	var overrides stringSlice
	var cfgPath string
	fs.Var(&overrides, "c", "Override config value key=value (repeatable, applied before subcommand overrides)")
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.mcpchat/config.toml)")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}
	return rootArgs{cfgPath: cfgPath, overrides: overrides}, fs.Args(), nil
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}

// loadConfig 按根参数加载配置并套用 -c 覆盖项。
func loadConfig(root rootArgs, extra []string) (config.Config, error) {
	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	return config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, extra)), nil
}

func newClient(cfg config.Config) *api.Client {
	return api.New(cfg.BaseURL)
}
