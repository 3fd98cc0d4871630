package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST API бронирований
// Реализует workflow.DayBookingQuery и workflow.DayBookingMutation
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        Logger
}

// NewClient создает новый экземпляр клиента, baseURL включает префикс /api/v1
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// GetDayBooking получает день бронирования; domain.ErrDayNotFound, если на дату бронирований нет
func (c *Client) GetDayBooking(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	var resp models.DayBookingResponse
	path := "/bookings/date/" + domain.DateKey(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, domain.ErrDayNotFound); err != nil {
		return nil, err
	}
	return toDomainDay(&resp)
}

// CreateDayBooking создаёт день с первой деталью
func (c *Client) CreateDayBooking(ctx context.Context, date time.Time, draft domain.DetailDraft) (*domain.DayBooking, error) {
	body := createDayBody{BookingDate: domain.DateKey(date), Details: newDetailBody(draft)}

	var resp models.DayBookingResponse
	if err := c.do(ctx, http.MethodPost, "/bookings", body, &resp, domain.ErrDayNotFound); err != nil {
		return nil, err
	}

	c.log.Info("bookingapi: created day booking id=%s for %s", resp.ID, resp.BookingDate)
	return toDomainDay(&resp)
}

// AppendDetail добавляет деталь в существующий день
func (c *Client) AppendDetail(ctx context.Context, dayBookingID uuid.UUID, draft domain.DetailDraft) (*domain.BookingDetail, error) {
	var resp models.DetailResponse
	path := fmt.Sprintf("/bookings/%s/details", dayBookingID)
	if err := c.do(ctx, http.MethodPost, path, newDetailBody(draft), &resp, domain.ErrDayNotFound); err != nil {
		return nil, err
	}

	detail := resp.ToDomainDetail()
	c.log.Info("bookingapi: appended detail id=%s to day=%s", detail.ID, dayBookingID)
	return &detail, nil
}

// ListMyDetails получает историю бронирований текущего пользователя
func (c *Client) ListMyDetails(ctx context.Context) ([]domain.MyDetail, error) {
	var resp models.MyDetailListResponse
	if err := c.do(ctx, http.MethodGet, "/bookings/details/my", nil, &resp, domain.ErrDetailNotFound); err != nil {
		return nil, err
	}

	items := make([]domain.MyDetail, 0, len(resp.Details))
	for i := range resp.Details {
		item, err := resp.Details[i].ToDomainMyDetail()
		if err != nil {
			return nil, fmt.Errorf("%w: detail %s: %v", ErrInvalidResponse, resp.Details[i].ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// CancelDetail отменяет свою деталь бронирования
func (c *Client) CancelDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) error {
	path := fmt.Sprintf("/bookings/%s/details/%s", dayBookingID, detailID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, domain.ErrDetailNotFound); err != nil {
		return err
	}
	c.log.Info("bookingapi: cancelled detail id=%s", detailID)
	return nil
}

// do выполняет запрос и переводит статус ответа в ошибки domain
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, notFound error) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("bookingapi: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp, notFound)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func statusError(resp *http.Response, notFound error) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body handlers.ErrorResponse
	_ = json.Unmarshal(raw, &body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, body.Message)
	case resp.StatusCode == http.StatusConflict && body.Code == handlers.CodeDayExists:
		return domain.ErrDayAlreadyExists
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrSlotTaken
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", domain.ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

func toDomainDay(resp *models.DayBookingResponse) (*domain.DayBooking, error) {
	day, err := resp.ToDomainDayBooking()
	if err != nil {
		return nil, fmt.Errorf("%w: day booking %s: %v", ErrInvalidResponse, resp.ID, err)
	}
	return day, nil
}
