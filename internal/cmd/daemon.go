package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ImmortalDemonGod/prime-directive/internal/adapters/watcher"
	"github.com/ImmortalDemonGod/prime-directive/internal/config"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/services"
	"github.com/ImmortalDemonGod/prime-directive/internal/theme"
)

// DaemonCmd watches repositories and freezes the ones that go idle
type DaemonCmd struct {
	Inactivity  time.Duration `help:"Idle time before a repository is frozen (default system.daemon_inactivity_seconds)"`
	Interval    time.Duration `help:"How often repositories are checked (default system.daemon_interval_seconds)"`
	MetricsAddr string        `help:"Serve Prometheus metrics on this address (default system.daemon_metrics_addr)" name:"metrics-addr"`
}

// Run executes the daemon command until SIGINT or SIGTERM.
// The store stays open for the whole run.
func (d *DaemonCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}
	sys := container.Config.System

	cfg := services.DaemonConfig{
		Inactivity: config.Seconds(sys.DaemonInactivitySeconds),
		Interval:   config.Seconds(sys.DaemonIntervalSeconds),
	}
	if d.Inactivity > 0 {
		cfg.Inactivity = d.Inactivity
	}
	if d.Interval > 0 {
		cfg.Interval = d.Interval
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("daemon interval must be positive, got %s", cfg.Interval)
	}
	addr := sys.DaemonMetricsAddr
	if d.MetricsAddr != "" {
		addr = d.MetricsAddr
	}

	w, err := watcher.New(container.Registry.All())
	if err != nil {
		return err
	}

	out := cli.Stdout()
	daemon := services.NewDaemonService(container.Registry, w, container.FreezeService, container.Store, cfg,
		func(n services.DaemonNotice) {
			line := fmt.Sprintf("%s %s: %s", time.Now().Format("15:04:05"), n.RepositoryID, n.Message)
			if n.Err != nil {
				fmt.Fprintln(out, theme.WarningStyle.Render(line+" ("+n.Err.Error()+")"))
				return
			}
			fmt.Fprintln(out, line)
		})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %d repositories (interval %s, inactivity %s)\n",
		len(w.Watching()), cfg.Interval, cfg.Inactivity)
	logging.Logger.Info("Daemon started",
		"repos", len(w.Watching()), "interval", cfg.Interval, "inactivity", cfg.Inactivity, "metrics_addr", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return daemon.Run(gctx)
	})
	if addr != "" {
		fmt.Fprintf(out, "Serving metrics on http://%s/metrics\n", addr)
		g.Go(func() error {
			return services.ServeMetrics(gctx, addr)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Daemon stopped")
	return nil
}
