package events

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось отправить в брокер
	ErrPublish = errors.New("events: failed to publish event")

	// ErrConfig возвращается при некорректной конфигурации издателя
	ErrConfig = errors.New("events: invalid publisher config")
)
