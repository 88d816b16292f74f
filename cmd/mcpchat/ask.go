package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"mcpchat/internal/api"
	"mcpchat/internal/chat"
	"mcpchat/internal/stream"
)

func askMain(root rootArgs, args []string) {
	if err := runAsk(root, args, os.Stdout); err != nil {
		log.Fatalf("ask failed: %v", err)
	}
}

// runAsk 发送一次性提问。默认走流式通道边收边打，-no-stream 退回整段响应。
func runAsk(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var mode string
	var sessionID string
	var noStream bool
	var timeoutSeconds int
	fs.StringVar(&mode, "mode", "", "Answer mode: agent or rag (default from config)")
	fs.StringVar(&sessionID, "session", "", "Reuse an existing session id")
	fs.BoolVar(&noStream, "no-stream", false, "Use the non-streaming endpoint")
	fs.IntVar(&timeoutSeconds, "timeout", 120, "Timeout seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	message := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if message == "" {
		return fmt.Errorf("usage: mcpchat ask [-mode agent|rag] [-session id] <message>")
	}

	cfg, err := loadConfig(root, nil)
	if err != nil {
		return err
	}
	if mode == "" {
		mode = cfg.Mode
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	client := newClient(cfg)
	req := api.ChatRequest{Message: message, SessionID: sessionID, Mode: api.ParseMode(mode)}

	if noStream {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.ToolsUsed) > 0 {
			fmt.Fprintf(out, "[tools: %s]\n", strings.Join(resp.ToolsUsed, ", "))
		}
		fmt.Fprintln(out, resp.Response)
		return nil
	}

	body, err := client.StreamChat(ctx, req)
	if err != nil {
		return err
	}
	defer body.Close()

	dec := stream.NewDecoder(body)
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			fmt.Fprintln(out)
			return fmt.Errorf("response stream ended unexpectedly")
		}
		if err != nil {
			return err
		}
		switch ev.Kind {
		case stream.KindChunk:
			fmt.Fprint(out, ev.Text)
		case stream.KindTool:
			fmt.Fprintf(out, "[tool: %s]\n", ev.Tool)
		case stream.KindDone:
			fmt.Fprintln(out)
			return nil
		case stream.KindFailed:
			fmt.Fprintln(out)
			return fmt.Errorf("%s", chat.FailedDiagnostic(ev.Message))
		}
	}
}
