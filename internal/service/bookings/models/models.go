package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// Request модели

// CancelDetailRequest запрос на отмену детали бронирования
type CancelDetailRequest struct {
	UserID       int64
	IsAdmin      bool
	DayBookingID uuid.UUID
	DetailID     uuid.UUID
}

// ListDaysRequest запрос на получение страницы дней (админка)
type ListDaysRequest struct {
	Page int
	Take int
}

// Response модели

// UserResponse данные пользователя, занявшего слот
type UserResponse struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	IsTeacher  bool   `json:"isTeacher"`
}

// DetailResponse деталь бронирования
type DetailResponse struct {
	ID           uuid.UUID    `json:"id"`
	DayBookingID uuid.UUID    `json:"dayBookingId"`
	Lesson       string       `json:"lesson"`
	TV           bool         `json:"tv"`
	Group        string       `json:"group"`
	User         UserResponse `json:"user"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DayBookingResponse день бронирования со всеми деталями
type DayBookingResponse struct {
	ID          uuid.UUID        `json:"id"`
	BookingDate string           `json:"bookingDate"` // "2026-10-20"
	Details     []DetailResponse `json:"details"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MyDetailResponse деталь пользователя вместе с датой
type MyDetailResponse struct {
	DetailResponse
	BookingDate string `json:"bookingDate"`
}

// MyDetailListResponse история бронирований пользователя
type MyDetailListResponse struct {
	Details []MyDetailResponse `json:"details"`
}

// DayBookingPageResponse страница дней (админка)
type DayBookingPageResponse struct {
	Bookings []DayBookingResponse `json:"bookings"`
	Page     int                  `json:"page"`
	Take     int                  `json:"take"`
	Total    int                  `json:"total"`
}

// Методы конвертации

// FromDomainDetail конвертирует domain модель в DTO
func FromDomainDetail(d *domain.BookingDetail) DetailResponse {
	return DetailResponse{
		ID:           d.ID,
		DayBookingID: d.DayBookingID,
		Lesson:       string(d.Lesson),
		TV:           d.TV,
		Group:        d.Group,
		User: UserResponse{
			ID:         d.Occupant.ID,
			FirstName:  d.Occupant.FirstName,
			SecondName: d.Occupant.SecondName,
			IsTeacher:  d.Occupant.IsTeacher,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDomainDayBooking конвертирует domain модель в DTO
func FromDomainDayBooking(day *domain.DayBooking) *DayBookingResponse {
	if day == nil {
		return nil
	}

	resp := &DayBookingResponse{
		ID:          day.ID,
		BookingDate: day.BookingDate.Format(domain.DateFormat),
		Details:     make([]DetailResponse, len(day.Details)),
		CreatedAt:   day.CreatedAt,
		UpdatedAt:   day.UpdatedAt,
	}
	for i := range day.Details {
		resp.Details[i] = FromDomainDetail(&day.Details[i])
	}
	return resp
}

// FromDomainMyDetails конвертирует историю пользователя в DTO
func FromDomainMyDetails(items []domain.MyDetail) *MyDetailListResponse {
	resp := &MyDetailListResponse{Details: make([]MyDetailResponse, len(items))}
	for i := range items {
		resp.Details[i] = MyDetailResponse{
			DetailResponse: FromDomainDetail(&items[i].BookingDetail),
			BookingDate:    items[i].BookingDate.Format(domain.DateFormat),
		}
	}
	return resp
}

// ToDomainDetail конвертирует DTO в domain модель
func (r *DetailResponse) ToDomainDetail() domain.BookingDetail {
	return domain.BookingDetail{
		ID:           r.ID,
		DayBookingID: r.DayBookingID,
		Lesson:       domain.Lesson(r.Lesson),
		TV:           r.TV,
		Group:        r.Group,
		Occupant: domain.UserRef{
			ID:         r.User.ID,
			FirstName:  r.User.FirstName,
			SecondName: r.User.SecondName,
			IsTeacher:  r.User.IsTeacher,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToDomainDayBooking конвертирует DTO в domain модель
func (r *DayBookingResponse) ToDomainDayBooking() (*domain.DayBooking, error) {
	date, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	day := &domain.DayBooking{
		ID:          r.ID,
		BookingDate: date,
		Details:     make([]domain.BookingDetail, len(r.Details)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for i := range r.Details {
		day.Details[i] = r.Details[i].ToDomainDetail()
	}
	return day, nil
}

// ToDomainMyDetail конвертирует DTO истории в domain модель
func (r *MyDetailResponse) ToDomainMyDetail() (domain.MyDetail, error) {
	date, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return domain.MyDetail{}, err
	}
	return domain.MyDetail{BookingDetail: r.DetailResponse.ToDomainDetail(), BookingDate: date}, nil
}
