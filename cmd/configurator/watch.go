package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/configurator/pkg/cli"
	"mercator-hq/configurator/pkg/config"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/featuremodel/lint"
	"mercator-hq/configurator/pkg/history"
	"mercator-hq/configurator/pkg/history/retention"
	"mercator-hq/configurator/pkg/session"
	"mercator-hq/configurator/pkg/telemetry/health"
	"mercator-hq/configurator/pkg/telemetry/logging"
	"mercator-hq/configurator/pkg/telemetry/metrics"
	"mercator-hq/configurator/pkg/watch"
)

const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	model       string
	session     string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload a feature model on change and revalidate a session",
	Long: `Watch a feature model file and reload it whenever it changes.

Every reload is parsed and linted; a model with lint errors is rejected and
the previous model stays current. With --session the script is replayed and
validated against each accepted model.

When metrics are enabled an HTTP server exposes Prometheus metrics together
with /health, /ready and /version. The retention scheduler prunes the history
while watching.

Examples:
  configurator watch --model wardrobe.json
  configurator watch --model wardrobe.json --session session.yaml --metrics-addr :9090`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.model, "model", "m", "", "feature model file (default: model.path)")
	watchCmd.Flags().StringVarP(&watchFlags.session, "session", "s", "", "session script to revalidate on every reload")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "metrics listen address (default: telemetry.metrics.listen_address)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	ctx := cmd.Context()

	path, err := modelPath(watchFlags.model, cfg)
	if err != nil {
		return err
	}

	var script *session.Script
	if watchFlags.session != "" {
		if script, err = session.LoadScript(watchFlags.session); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	store, err := openHistory(&cfg.History)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	if store != nil {
		defer store.Close()
	}

	out := cmd.OutOrStdout()
	reloader := watch.NewReloader(path,
		watch.WithParser(newParser(cfg)),
		watch.WithLinter(lint.NewLinter().WithStrictMode(cfg.Model.StrictLint)),
		watch.WithRecorder(collector),
		watch.WithOnReload(func(model *featuremodel.Model, issues *lint.IssueList) {
			fmt.Fprintf(out, "Loaded %q (%d features, %d warnings)\n", model.Name, model.Len(), len(issues.Warnings()))
			if script != nil {
				revalidate(ctx, out, model, cfg, store, collector, script)
			}
		}),
	)
	if err := reloader.Load(); err != nil {
		return cli.NewCommandError("watch", err)
	}

	if store != nil {
		pruner := retention.NewPruner(store, retentionConfig(&cfg.History.Retention)).
			OnPrune(collector.RecordHistoryPrune)
		if err := pruner.Scheduler().Start(ctx); err != nil {
			return cli.NewConfigError("history.retention.schedule", err.Error())
		}
	}

	addr := watchFlags.metricsAddr
	if addr == "" && cfg.Telemetry.Metrics.Enabled {
		addr = cfg.Telemetry.Metrics.ListenAddress
	}
	if addr != "" {
		srv := newTelemetryServer(addr, cfg, collector, reloader, store)
		go serveTelemetry(ctx, srv)
	}

	fw, err := watch.NewFileWatcher(&watch.Config{
		Path:     path,
		Debounce: cfg.Watch.Debounce,
	}, slog.Default())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer fw.Stop()

	if err := fw.Watch(ctx, reloader.Load); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// revalidate replays script against model and prints the report.
func revalidate(ctx context.Context, out io.Writer, model *featuremodel.Model, cfg *config.Config, store history.Storage, collector *metrics.Collector, script *session.Script) {
	s, err := newSession(model, cfg, store, collector)
	if err != nil {
		appLogger.ErrorContext(ctx, "create session", "error", err)
		return
	}
	if _, err := s.Run(script); err != nil {
		fmt.Fprintf(out, "Session replay failed: %v\n", err)
		return
	}

	ctx = logging.WithModel(logging.WithSession(ctx, s.ID()), model.Name)
	report, err := s.Validate(ctx)
	if err != nil {
		appLogger.WarnContext(ctx, "validation not recorded", "error", err)
	}
	if report == nil {
		return
	}
	result := &ValidateResult{Session: s.ID(), Model: model.Name, Report: report, Price: s.PriceStatus()}
	if err := result.WriteText(out); err != nil {
		appLogger.ErrorContext(ctx, "write report", "error", err)
	}
}

func newTelemetryServer(addr string, cfg *config.Config, collector *metrics.Collector, reloader *watch.Reloader, store history.Storage) *http.Server {
	checker := health.New(0)
	checker.RegisterCheck("model", health.ModelCheck(reloader.Current))
	if store != nil {
		checker.RegisterCheck("history", health.StorageCheck(store))
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serveTelemetry runs srv until ctx is cancelled.
func serveTelemetry(ctx context.Context, srv *http.Server) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("telemetry server shutdown", "error", err)
		}
	}()

	appLogger.Info("telemetry server listening", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("telemetry server failed", "error", err)
	}
}
