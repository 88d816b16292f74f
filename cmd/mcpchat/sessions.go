package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

func sessionsMain(root rootArgs, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	var err error
	switch args[0] {
	case "list":
		err = runSessionsList(root, os.Stdout)
	case "show":
		err = runSessionsShow(root, args[1:], os.Stdout)
	case "rm", "remove":
		err = runSessionsRemove(root, args[1:])
	default:
		err = fmt.Errorf("unknown sessions subcommand: %s (use list|show|rm)", args[0])
	}
	if err != nil {
		log.Fatalf("sessions %s: %v", args[0], err)
	}
}

func runSessionsList(root rootArgs, out io.Writer) error {
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	resp, err := newClient(cfg).Sessions(ctx)
	if err != nil {
		return err
	}
	if len(resp.Sessions) == 0 {
		fmt.Fprintln(out, "no active sessions")
		return nil
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tMESSAGES")
	for _, s := range resp.Sessions {
		fmt.Fprintf(w, "%s\t%d\n", s.SessionID, s.MessageCount)
	}
	return w.Flush()
}

func runSessionsShow(root rootArgs, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mcpchat sessions show <session-id>")
	}
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := newClient(cfg).Session(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "session %s (%d messages)\n", info.SessionID, info.MessageCount)
	for _, msg := range info.Messages {
		fmt.Fprintf(out, "[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}

func runSessionsRemove(root rootArgs, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mcpchat sessions rm <session-id>")
	}
	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := newClient(cfg).DeleteSession(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
