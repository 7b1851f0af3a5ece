package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/lets-plot-settings/internal/application"
	"github.com/eugenenazirov/lets-plot-settings/internal/config"
	"github.com/eugenenazirov/lets-plot-settings/internal/logging"
	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
	"github.com/eugenenazirov/lets-plot-settings/internal/version"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("lets-plot-settings", "Resolves lets-plot global settings from defaults, LETS_PLOT_* variables and explicit values")
	kingpinApp.Version(version.Version)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to a dotenv file loaded before settings are resolved").String()
	explicit := kingpinApp.Flag("set", "Explicit setting as name=value (repeatable)").Short('s').Strings()

	serveCmd := kingpinApp.Command("serve", "Serve the settings inspection API").Default()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	getCmd := kingpinApp.Command("get", "Print a single setting")
	getName := getCmd.Arg("name", "Setting name, e.g. offline or dev_maptiles_url").Required().String()
	getType := getCmd.Flag("type", "Accessor used to read the setting").Default("any").Enum("any", "string", "bool", "int")

	listCmd := kingpinApp.Command("list", "Print the resolved settings table")
	frontendCmd := kingpinApp.Command("frontend", "Print script loading, map tiles and geocoding options as JSON")

	livemapCmd := kingpinApp.Command("livemap", "Fill tiles and geocoding options of livemap layers in a plot spec")
	livemapSpec := livemapCmd.Arg("spec", "Path to a plot spec JSON file").Required().ExistingFile()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		EnvFile:    *envFile,
		Settings:   *explicit,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(settings.IsProductionMode(version.Version))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	resolver := application.NewResolver(cfg, logger)

	switch command {
	case getCmd.FullCommand():
		err = runGet(os.Stdout, resolver, *getName, *getType)
	case listCmd.FullCommand():
		err = runList(os.Stdout, resolver)
	case frontendCmd.FullCommand():
		err = runFrontend(os.Stdout, resolver)
	case livemapCmd.FullCommand():
		err = runLivemap(os.Stdout, resolver, *livemapSpec)
	default:
		serve(cfg, resolver, logger)
		return
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func serve(cfg config.Config, resolver *settings.Resolver, logger *zap.Logger) {
	app := application.New(cfg, resolver, logger)

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
