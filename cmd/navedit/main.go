package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/navmesh-editor/internal/cli"
	"github.com/annel0/navmesh-editor/internal/logging"
)

// Задаётся через ldflags при сборке.
var version = "dev"

func main() {
	if err := logging.InitDefaultLogger("navedit"); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка инициализации логирования: %v\n", err)
		os.Exit(1)
	}

	// Ctrl+C прерывает сборку и сохранение пресетов через контекст
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.NewRootCmd(version).ExecuteContext(ctx)
	stop()
	logging.CloseDefaultLogger()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
