package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"

	"github.com/zrma/trollsmile/command"
	"github.com/zrma/trollsmile/commands"
	"github.com/zrma/trollsmile/config"
	"github.com/zrma/trollsmile/console"
	"github.com/zrma/trollsmile/loader"
	"github.com/zrma/trollsmile/logging"
	"github.com/zrma/trollsmile/server"
	"github.com/zrma/trollsmile/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel())
	if err != nil {
		log.Fatalln(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Info(
		"start",
		"method", "main",
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: "trollsmile",
		Endpoint:    cfg.OtelEndpoint,
		SampleRatio: cfg.OtelSampleRatio,
	})
	if err != nil {
		logger.Fatal(
			"telemetry setup failed",
			"err", err,
		)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Err(
				"telemetry shutdown failed",
				"err", err,
			)
		}
	}()

	registry := command.NewRegistry(command.WithOverride(cfg.AllowOverride))
	l := loader.New(cfg.CommandsDir,
		loader.WithExtension(cfg.CommandExt),
		loader.WithLogger(logger),
	)
	if err := l.Load(ctx, registry, commands.Modules()); err != nil {
		logger.Fatal(
			"loading commands failed",
			"dir", cfg.CommandsDir,
			"err", err,
		)
	}

	bot := command.NewBot(registry,
		command.WithIdentity(command.Identity{Name: cfg.Name, Icon: cfg.Icon}),
		command.WithPrefix(cfg.Prefix),
		command.WithLogger(logger),
	)

	if cfg.Listen != "" {
		lis, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			logger.Fatal(
				"couldn't start listening",
				"addr", cfg.Listen,
				"err", err,
			)
		}
		if err := server.New(logger).Serve(ctx, lis, bot); err != nil {
			logger.Err(
				"serve failed",
				"err", err,
			)
		}
		logger.Info("end")
		return
	}

	if err := console.PrintLogo(os.Stdout, cfg.Logo); err != nil {
		logger.Fatal(
			"logo failed",
			"err", err,
		)
	}
	err = bot.Run(ctx, console.New(os.Stdin, os.Stdout, cfg.Prompt))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Err(
			"input failed",
			"err", err,
		)
	}
	logger.Info("end")
}
