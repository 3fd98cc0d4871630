package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/workflow"
)

func renderNotices(w io.Writer, notices []workflow.Notice) {
	for _, n := range notices {
		if n.Kind == domain.KindNone {
			fmt.Fprintf(w, "[ok] %s (%s)\n", n.Message, domain.DateKey(n.Date))
			continue
		}
		fmt.Fprintf(w, "[%s] %s (%s)\n", n.Kind, n.Message, domain.DateKey(n.Date))
	}
}

func renderView(w io.Writer, view workflow.View) {
	if !view.HasDate {
		return
	}
	fmt.Fprintf(w, "%s, режим %s, состояние %s\n", domain.DateKey(view.Date), view.Mode, view.Phase)
	if view.Availability == nil {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ПАРА\tТВ\tСТАТУС\tКТО\tГРУППА")
	for _, slot := range view.Availability {
		tvMark := "-"
		if slot.Slot.TV {
			tvMark = "да"
		}
		if !slot.IsBooked() {
			fmt.Fprintf(tw, "%s\t%s\tсвободно\t\t\n", slot.Slot.Lesson.Title(), tvMark)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\tзанято\t%s\t%s\n",
			slot.Slot.Lesson.Title(), tvMark, slot.Detail.Occupant.DisplayName(), slot.Detail.Group)
	}
	_ = tw.Flush()
}

func renderMyDetails(w io.Writer, items []domain.MyDetail) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Бронирований нет")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ДАТА\tПАРА\tТВ\tГРУППА\tДЕНЬ\tДЕТАЛЬ")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\t%s\n",
			domain.DateKey(item.BookingDate), item.Lesson.Title(), item.TV, item.Group, item.DayBookingID, item.ID)
	}
	_ = tw.Flush()
}
