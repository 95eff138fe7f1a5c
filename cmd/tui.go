package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/agegate/internal/tui"
	"github.com/twiced-technology-gmbh/agegate/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	opts := []tui.Option{tui.WithLogger(logger), tui.WithActivityLog()}
	if noColor() {
		opts = append(opts, tui.WithPlainHelp())
	}
	model, err := tui.NewApp(cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, model, p, logger)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, model *tui.App, p *tea.Program, logger *zap.Logger) {
	dir, names := model.WatchPaths()
	w, err := watcher.New(dir, names, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
		return // non-fatal: TUI works without live reload
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		p.Send(tui.ErrMsg(err))
	})
}
