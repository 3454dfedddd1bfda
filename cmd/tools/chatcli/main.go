package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/config"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	chatservice "github.com/zhouzirui/farmstead/backend/internal/service/chat"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using system environment variables", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Log.NewLogger())

	knowledgePath := flag.String("knowledge", cfg.Assistant.KnowledgeFile, "YAML 知识库路径，留空使用内置知识库")
	delay := flag.Duration("delay", 0, "模拟的回复延迟")
	flag.Parse()

	categories, err := knowledge.Load(*knowledgePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "知识库加载失败: %v\n", err)
		os.Exit(1)
	}
	store := knowledge.NewMemoryStore(categories)

	svc := chatservice.NewService(intent.NewResolver(store), intent.NewDispatcher(store), chatservice.Config{
		Delay: chatservice.FixedDelay(*delay),
	})

	if err := run(context.Background(), svc, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *chatservice.Service, in io.Reader, out io.Writer) error {
	session, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}

	messages, err := svc.LoadTranscript(ctx, session.ID)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		printMessage(out, msg)
	}
	printHelp(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var exchange chatservice.Exchange
		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/help":
			printHelp(out)
			continue
		case line == "/actions":
			for _, a := range svc.QuickActions() {
				fmt.Fprintf(out, "  %s %-10s %s\n", a.Icon, a.Key, a.Title)
			}
			continue
		case line == "/reset":
			messages, err := svc.Reset(ctx, session.ID)
			if err != nil {
				return err
			}
			printMessage(out, messages[0])
			continue
		case strings.HasPrefix(line, "/quick "):
			exchange, err = svc.SubmitQuickAction(ctx, session.ID, strings.TrimSpace(strings.TrimPrefix(line, "/quick ")))
		default:
			exchange, err = svc.SubmitText(ctx, session.ID, line)
		}

		if errors.Is(err, chatservice.ErrUnknownQuickAction) {
			fmt.Fprintf(out, "unknown quick action, see /actions\n")
			continue
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, "/quick ") {
			printMessage(out, exchange.User)
		}
		printMessage(out, exchange.Bot)
	}
}

func printMessage(out io.Writer, msg chat.Message) {
	prefix := "[bot]"
	if msg.Sender == chat.SenderUser {
		prefix = "[you]"
	}
	stamp := msg.Timestamp.Local().Format(time.Kitchen)
	for i, line := range strings.Split(msg.Text, "\n") {
		if i == 0 {
			fmt.Fprintf(out, "%s %s %s\n", stamp, prefix, line)
			continue
		}
		fmt.Fprintf(out, "      %s\n", line)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "可用命令:")
	fmt.Fprintln(out, "  /quick <category> - 快捷话题")
	fmt.Fprintln(out, "  /actions          - 列出快捷话题")
	fmt.Fprintln(out, "  /reset            - 重置对话")
	fmt.Fprintln(out, "  /quit             - 退出")
}
