package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/notesite/cmd/notesite/commands"
	"git.home.luguber.info/inful/notesite/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	m := commands.NewMain()
	err := m.Run(ctx, os.Args[1:])
	cancel()
	if err != nil {
		errors.NewCLIErrorAdapter(m.Verbose(), nil).HandleError(err)
	}
}
