// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yefeblgn/TodoListApp/internal/api"
	"github.com/yefeblgn/TodoListApp/internal/cli"
	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/commands"
	"github.com/yefeblgn/TodoListApp/internal/notify"
	"github.com/yefeblgn/TodoListApp/internal/session"
	"github.com/yefeblgn/TodoListApp/internal/taskstore"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *clientcfg.Config) (*commands.App, error) {
		client := api.NewClient(cfg.ServerURL, cfg.Timeout())
		sessions := session.NewStore(cfg.Dir)

		// Attach the stored token so authenticated endpoints work when
		// the server enforces them.
		if sess, err := sessions.Load(); err == nil && sess != nil {
			client.SetToken(sess.Token)
		}

		// The timer scheduler stands in for a resident platform
		// notification service. In a one-shot CLI run only reminders
		// falling due before the command returns can fire; anything
		// later is re-armed on the next invocation's Load.
		scheduler := notify.NewTimerScheduler(func(r notify.Reminder) {
			fmt.Fprintf(os.Stderr, "reminder: %s\n", r.Body)
		})

		return &commands.App{
			Account:  client,
			Sessions: sessions,
			Tasks:    taskstore.New(client, sessions, scheduler),
		}, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
