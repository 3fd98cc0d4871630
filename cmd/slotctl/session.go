package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/m04kA/SMC-StudySlots/internal/config"
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-StudySlots/internal/workflow"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

// bookingBackend возможности API, которые нужны командам
type bookingBackend interface {
	workflow.DayBookingQuery
	workflow.DayBookingMutation
	ListMyDetails(ctx context.Context) ([]domain.MyDetail, error)
	CancelDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) error
}

// session контекст одного запуска CLI
type session struct {
	api  bookingBackend
	mode workflow.Mode
	log  workflow.Logger
	out  io.Writer
}

func withSession(run func(c *cli.Context, s *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return err
		}
		if v := c.String("api-url"); v != "" {
			cfg.Client.APIURL = v
		}
		if v := c.String("mode"); v != "" {
			cfg.Client.Mode = v
		}
		if err := cfg.ValidateClient(); err != nil {
			return err
		}

		log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Close()

		s := &session{
			api:  bookingapi.NewClient(cfg.Client.APIURL, cfg.Client.TimeoutDuration(), bookingapi.StaticToken(cfg.Client.Token), log),
			mode: parseMode(cfg.Client.Mode),
			log:  log,
			out:  c.App.Writer,
		}
		return run(c, s)
	}
}

func parseMode(mode string) workflow.Mode {
	if mode == "immediate" {
		return workflow.ModeImmediateClaim
	}
	return workflow.ModeConfirmFirst
}

func (s *session) controller() *workflow.Controller {
	return workflow.NewController(s.api, s.api,
		workflow.WithMode(s.mode),
		workflow.WithLogger(s.log),
		workflow.WithAuthErrorHandler(func(err error) {
			fmt.Fprintf(s.out, "Требуется вход: обновите токен (SLOTS_TOKEN): %v\n", err)
		}),
	)
}
