package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/workflow"
)

func runShow(c *cli.Context, s *session) error {
	date, err := domain.ParseDate(c.String("date"))
	if err != nil {
		return err
	}
	return s.show(c.Context, date)
}

func runBook(c *cli.Context, s *session) error {
	date, err := domain.ParseDate(c.String("date"))
	if err != nil {
		return err
	}
	lesson, err := domain.ParseLesson(c.String("lesson"))
	if err != nil {
		return err
	}
	return s.book(c.Context, date, lesson, c.Bool("tv"), c.String("group"))
}

func runMy(c *cli.Context, s *session) error {
	items, err := s.api.ListMyDetails(c.Context)
	if err != nil {
		return err
	}
	renderMyDetails(s.out, items)
	return nil
}

func runCancel(c *cli.Context, s *session) error {
	dayID, err := uuid.Parse(c.String("day"))
	if err != nil {
		return fmt.Errorf("invalid --day: %w", err)
	}
	detailID, err := uuid.Parse(c.String("detail"))
	if err != nil {
		return fmt.Errorf("invalid --detail: %w", err)
	}
	if err := s.api.CancelDetail(c.Context, dayID, detailID); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Бронирование отменено")
	return nil
}

// show загружает дату и печатает сетку слотов
func (s *session) show(ctx context.Context, date time.Time) error {
	ctrl := s.controller()
	err := ctrl.SelectDate(ctx, date)
	renderNotices(s.out, ctrl.TakeNotices())
	if err != nil {
		return err
	}
	renderView(s.out, ctrl.Snapshot())
	return nil
}

// book проходит сценарий бронирования: дата, слот, подтверждение
func (s *session) book(ctx context.Context, date time.Time, lesson domain.Lesson, tv bool, group string) error {
	ctrl := s.controller()

	if err := ctrl.SelectDate(ctx, date); err != nil {
		renderNotices(s.out, ctrl.TakeNotices())
		return err
	}

	err := ctrl.PickSlot(ctx, lesson, tv)
	if err == nil && s.mode == workflow.ModeConfirmFirst {
		ctrl.SetGroup(group)
		err = ctrl.Submit(ctx)
	}

	renderNotices(s.out, ctrl.TakeNotices())
	renderView(s.out, ctrl.Snapshot())
	return err
}
