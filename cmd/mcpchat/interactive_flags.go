package main

import (
	"flag"
	"strings"
)

// interactiveArgs 收集交互模式的命令行参数。
type interactiveArgs struct {
	prompt          string
	mode            string
	configOverrides stringSlice
}

func newInteractiveFlagSet(name string) (*flag.FlagSet, *interactiveArgs) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cli := &interactiveArgs{}
	fs.StringVar(&cli.prompt, "p", "", "Initial prompt to send on startup")
	fs.StringVar(&cli.mode, "mode", "", "Answer mode: agent or rag (default from config)")
	fs.Var(&cli.configOverrides, "c", "Override config value key=value (repeatable)")
	return fs, cli
}

// finalizePrompt 在未指定 -p 时将剩余位置参数拼作初始输入。
func (cli *interactiveArgs) finalizePrompt(fs *flag.FlagSet) {
	if cli.prompt != "" {
		return
	}
	if rest := fs.Args(); len(rest) > 0 {
		cli.prompt = strings.Join(rest, " ")
	}
}
