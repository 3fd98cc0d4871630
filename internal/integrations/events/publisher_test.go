package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newPublisher(writer, "bookings", logger.NewNop())

	detail := &domain.BookingDetail{
		ID:           uuid.New(),
		DayBookingID: uuid.New(),
		Lesson:       domain.Lesson2,
		TV:           true,
		Group:        "ИУ7-61Б",
		Occupant:     domain.UserRef{ID: 42},
	}
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	event := NewSlotEvent(TypeSlotClaimed, date, detail, time.Now())

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "2026-10-20", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, TypeSlotClaimed, string(msg.Headers[0].Value))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, detail.ID, decoded.DetailID)
	assert.Equal(t, domain.Lesson2, decoded.Lesson)
	assert.Equal(t, int64(42), decoded.UserID)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	publisher := newPublisher(writer, "bookings", logger.NewNop())

	err := publisher.Publish(context.Background(), BookingEvent{Type: TypeSlotReleased})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewKafkaPublisher_Config(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "bookings", logger.NewNop())
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", logger.NewNop())
	assert.ErrorIs(t, err, ErrConfig)
}
