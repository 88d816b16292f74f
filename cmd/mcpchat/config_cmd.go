package main

import (
	"fmt"
	"io"
	"os"

	"mcpchat/internal/config"
)

// configMain 查看或写入本地客户端配置（~/.mcpchat/config.toml）。
func configMain(root rootArgs, args []string) {
	if len(args) == 0 {
		args = []string{"show"}
	}
	var err error
	switch args[0] {
	case "show":
		err = runConfigShow(root, os.Stdout)
	case "set":
		err = runConfigSet(root, args[1:])
	default:
		err = fmt.Errorf("unknown config subcommand: %s (use show|set)", args[0])
	}
	if err != nil {
		log.Fatalf("config %s: %v", args[0], err)
	}
}

func runConfigShow(root rootArgs, out io.Writer) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "base_url: %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "mode:     %s\n", cfg.Mode)
	if cfg.Source != "" {
		fmt.Fprintf(out, "source:   %s\n", cfg.Source)
	}
	return nil
}

func runConfigSet(root rootArgs, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mcpchat config set key=value [key=value ...]")
	}
	cfg, err := loadConfig(root, args)
	if err != nil {
		return err
	}
	path := root.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
