package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/zrma/trollsmile/client"
	"github.com/zrma/trollsmile/config"
	"github.com/zrma/trollsmile/console"
	"github.com/zrma/trollsmile/logging"
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
	logger.Info(
		"start",
		"method", "main",
		"remote", cfg.Remote,
	)

	c := client.New(logger, cfg.Remote)
	if err := c.Init(); err != nil {
		logger.Err(
			"client initializing failed",
			"err", err,
		)
		return
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Err(
				"client closing failed",
				"err", err,
			)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	in := console.New(os.Stdin, os.Stdout, cfg.Prompt)
	for ctx.Err() == nil {
		line, err := in.ReadLine(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				logger.Err(
					"input failed",
					"err", err,
				)
			}
			break
		}

		payloads, err := c.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Err(
				"api request failed",
				"method", "Dispatch",
				"err", err,
			)
			continue
		}
		for _, p := range payloads {
			if err := console.Render(os.Stdout, p); err != nil {
				logger.Err(
					"render failed",
					"err", err,
				)
			}
		}
	}

	logger.Info("end")
}
