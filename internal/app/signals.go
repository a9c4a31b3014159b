package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"
)

// SetupSignalHandler stops the application on SIGINT or SIGTERM so the
// terminal is restored before the process exits.
func SetupSignalHandler(app *tview.Application) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping", "signal", sig.String())
		app.Stop()
	}()
}
