package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pagescroll/internal/config"
	"github.com/san-kum/pagescroll/internal/logging"
)

// Run starts the full-screen live view and blocks until it exits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(c *config.Config, err error) {
			p.Send(ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logging.Warn("config watch %s: %v", opts.ConfigPath, err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			defer w.Close()
			go w.Run(ctx)
		}
	}

	_, err = p.Run()
	return err
}
