package main

import (
	"flag"
	"log/slog"
	"os"

	"transitheat.dev/reachability/internal/appconf"
	"transitheat.dev/reachability/internal/feed"
)

func main() {
	var cfg appconf.Config
	var feedCfg feed.Config
	var envFlag string
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to a JSON config file; flags below override its values")
	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per client for rate limiting")
	flag.StringVar(&feedCfg.URL, "gtfs-url", "https://www.soundtransit.org/GTFS-rail/40_gtfs.zip", "URL or local path to a static GTFS zip file")
	flag.StringVar(&feedCfg.AuthHeaderName, "gtfs-auth-header-name", "", "Optional header name for authenticating to a remote GTFS feed")
	flag.StringVar(&feedCfg.AuthHeaderValue, "gtfs-auth-header-value", "", "Optional header value for authenticating to a remote GTFS feed")
	flag.Parse()

	if configPath != "" {
		jsonCfg, err := appconf.LoadFromFile(configPath)
		if err != nil {
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			logger.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
		cfg = jsonCfg.ToAppConfig()
		feedCfg = jsonCfg.ToFeedConfig()
		envFlag = jsonCfg.Env
		// Parse again so that flags given explicitly override the file's values.
		flag.Parse()
	}

	feedCfg.Verbose = true
	cfg.Verbose = true
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	coreApp, err := BuildApplication(cfg, feedCfg)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv := CreateServer(coreApp, cfg)

	if err := Run(srv, coreApp.Feed, coreApp.Logger); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
