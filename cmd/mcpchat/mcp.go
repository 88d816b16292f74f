package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"mcpchat/internal/api"
)

const registryTimeout = 30 * time.Second

func mcpMain(root rootArgs, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	var err error
	switch args[0] {
	case "list":
		err = runMCPList(root, os.Stdout)
	case "add":
		err = runMCPAdd(root, args[1:])
	case "set":
		err = runMCPSet(root, args[1:])
	case "rm", "remove":
		err = runMCPRemove(root, args[1:])
	case "tools":
		err = runMCPTools(root, os.Stdout)
	default:
		err = fmt.Errorf("unknown mcp subcommand: %s (use list|add|set|rm|tools)", args[0])
	}
	if err != nil {
		log.Fatalf("mcp %s: %v", args[0], err)
	}
}

func runMCPList(root rootArgs, out io.Writer) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	resp, err := newClient(cfg).MCPServers(ctx)
	if err != nil {
		return err
	}
	if len(resp.Servers) == 0 {
		fmt.Fprintln(out, "no MCP servers registered")
		return nil
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tURL\tAUTH")
	for _, s := range resp.Servers {
		auth := "-"
		if s.HasAPIKey {
			auth = "api-key"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.URL, auth)
	}
	return w.Flush()
}

func runMCPTools(root rootArgs, out io.Writer) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	resp, err := newClient(cfg).Tools(ctx)
	if err != nil {
		return err
	}
	if len(resp.Tools) == 0 {
		fmt.Fprintln(out, "no tools available")
		return nil
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSERVER\tDESCRIPTION")
	for _, t := range resp.Tools {
		server := t.Server
		if server == "" {
			server = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, server, t.Description)
	}
	return w.Flush()
}

func parseServerFlags(name string, args []string) (api.MCPServer, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var server api.MCPServer
	fs.StringVar(&server.APIKey, "api-key", "", "API key for the server (optional)")
	if err := fs.Parse(args); err != nil {
		return api.MCPServer{}, nil, err
	}
	return server, fs.Args(), nil
}

func runMCPAdd(root rootArgs, args []string) error {
	server, rest, err := parseServerFlags("mcp add", args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("usage: mcpchat mcp add [-api-key key] <name> <url>")
	}
	server.Name, server.URL = rest[0], rest[1]

	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := newClient(cfg).AddMCPServer(ctx, server); err != nil {
		return err
	}
	fmt.Printf("added %s\n", server.Name)
	return nil
}

func runMCPSet(root rootArgs, args []string) error {
	server, rest, err := parseServerFlags("mcp set", args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("usage: mcpchat mcp set [-api-key key] <name> <url>")
	}
	server.Name, server.URL = rest[0], rest[1]

	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := newClient(cfg).UpdateMCPServer(ctx, server.Name, server); err != nil {
		return err
	}
	fmt.Printf("updated %s\n", server.Name)
	return nil
}

func runMCPRemove(root rootArgs, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mcpchat mcp rm <name>")
	}
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := newClient(cfg).DeleteMCPServer(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}
