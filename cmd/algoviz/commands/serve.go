package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-algoviz/pkg/api"
	"github.com/dd0wney/cluso-algoviz/pkg/assistant"
	"github.com/dd0wney/cluso-algoviz/pkg/config"
	"github.com/dd0wney/cluso-algoviz/pkg/events"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/server"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

const metricsInterval = 15 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve exposes sessions, stateless traces and the assistant over HTTP.
SIGHUP reloads the config file and applies the new log level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd, cfg, configPath, version)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (YAML)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	return cmd
}

func serve(cmd *cobra.Command, cfg *config.Config, configPath, version string) error {
	logger := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level), logging.Format(cfg.Log.Format))
	reg := metrics.NewRegistry()
	proxies, err := cfg.TrustedProxies()
	if err != nil {
		return err
	}

	broker := events.NewBroker[events.FrameEvent](events.DefaultBuffer)
	defer broker.Close()

	sessions := session.NewManager(cfg.ManagerSettings(), logger, reg,
		session.WithLayout(cfg.LayoutSettings()),
		session.WithEvents(broker),
	)
	defer sessions.Close()

	asst, err := assistant.New(cfg.AssistantSettings(), assistant.WithLogger(logger), assistant.WithMetrics(reg))
	if err != nil {
		return err
	}

	apiServer := api.NewServer(sessions, asst, api.Options{
		Version:        version,
		MaxSessions:    cfg.Sessions.Max,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimit:      float64(cfg.Server.RateLimit),
		TrustedProxies: proxies,
		Logger:         logger,
		Metrics:        reg,
		Events:         broker,
	})
	defer apiServer.Close()

	ctx := cmd.Context()
	go apiServer.UpdateMetricsPeriodically(ctx, metricsInterval)

	srv := server.NewGracefulServer(apiServer.Handler(), server.Options{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          logger,
	})
	srv.SetConfigReloadFunc(func() error {
		next, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.SetLevel(logging.ParseLevel(next.Log.Level))
		logger.Info("log level reloaded", logging.String("level", next.Log.Level))
		return nil
	})

	logger.Info("algoviz starting",
		logging.String("addr", cfg.Server.Addr),
		logging.String("version", version),
		logging.Bool("assistant_remote", asst.RemoteEnabled()),
	)
	return srv.Run(ctx)
}
