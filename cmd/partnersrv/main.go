package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/productfruits/partnerhub-internal/internal/common/logtrace"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/config"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/db"
	"github.com/productfruits/partnerhub-internal/internal/partnersrv/server"
)

const defaultConfigFile = "/etc/partnerhub/partnersrv.conf"

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		slog.Error().Err(err).Msg("unable to initialize database pool")
		os.Exit(1)
	}

	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	if err := loadPartnerTree(ctx, s); err != nil {
		slog.Error().Err(err).Msg("unable to load partner tree")
		os.Exit(1)
	}

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// loadPartnerTree does the initial pair load so the first request sees data.
func loadPartnerTree(ctx context.Context, s *server.PartnerServer) error {
	ctx = db.ConnCtx(ctx)
	conn := db.DB(ctx)
	if conn == nil {
		return errors.New("unable to get db connection")
	}
	defer conn.Close(ctx)
	return s.Reconciler.Load(ctx)
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", defaultConfigFile, "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
