package bookingapi

import (
	"context"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// TokenSource выдаёт токен сессии для каждого запроса
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken токен, заданный конфигурацией или переменной окружения
type StaticToken string

// Token возвращает токен
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", domain.ErrUnauthorized
	}
	return string(t), nil
}

// detailBody деталь в запросах создания дня и добавления
type detailBody struct {
	Lesson string `json:"lesson"`
	TV     bool   `json:"tv"`
	Group  string `json:"group"`
}

type createDayBody struct {
	BookingDate string     `json:"bookingDate"`
	Details     detailBody `json:"details"`
}

func newDetailBody(draft domain.DetailDraft) detailBody {
	return detailBody{
		Lesson: string(draft.Lesson),
		TV:     draft.TV,
		Group:  draft.Group,
	}
}
