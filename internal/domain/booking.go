package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRef данные пользователя, занявшего слот (денормализуются на момент бронирования)
type UserRef struct {
	ID         int64
	FirstName  string
	SecondName string
	IsTeacher  bool
}

// DisplayName имя для отображения "кем занято"
func (u UserRef) DisplayName() string {
	switch {
	case u.FirstName == "" && u.SecondName == "":
		return "Unknown"
	case u.SecondName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.SecondName
	default:
		return u.FirstName + " " + u.SecondName
	}
}

// BookingDetail один занятый слот внутри дня
type BookingDetail struct {
	ID           uuid.UUID
	DayBookingID uuid.UUID
	Lesson       Lesson
	TV           bool
	Group        string
	Occupant     UserRef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot возвращает слот, который занимает деталь
func (d *BookingDetail) Slot() Slot {
	return Slot{Lesson: d.Lesson, TV: d.TV}
}

// DayBooking все бронирования на одну календарную дату
// Дата является естественным ключом: на одну дату существует не больше одного DayBooking
type DayBooking struct {
	ID          uuid.UUID
	BookingDate time.Time
	Details     []BookingDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmptyDay пустая "оболочка" дня без бронирований (ответ 404 нормализуется в неё)
func EmptyDay(date time.Time) *DayBooking {
	return &DayBooking{
		BookingDate: TruncateDate(date),
		Details:     []BookingDetail{},
	}
}

// Exists возвращает true, если день уже создан на бэкенде
func (d *DayBooking) Exists() bool {
	return d != nil && d.ID != uuid.Nil
}

// FindDetail ищет деталь, занимающую слот (последняя найденная побеждает)
func (d *DayBooking) FindDetail(slot Slot) (*BookingDetail, bool) {
	if d == nil {
		return nil, false
	}
	var found *BookingDetail
	for i := range d.Details {
		if d.Details[i].Slot() == slot {
			found = &d.Details[i]
		}
	}
	return found, found != nil
}

// Clone глубокая копия дня
func (d *DayBooking) Clone() *DayBooking {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Details = make([]BookingDetail, len(d.Details))
	copy(clone.Details, d.Details)
	return &clone
}

// DetailDraft данные для создания детали бронирования
type DetailDraft struct {
	Lesson Lesson
	TV     bool
	Group  string
}

// Slot возвращает слот черновика
func (d DetailDraft) Slot() Slot {
	return Slot{Lesson: d.Lesson, TV: d.TV}
}

// MyDetail деталь бронирования пользователя вместе с датой (для истории)
type MyDetail struct {
	BookingDetail
	BookingDate time.Time
}

// Page параметры пагинации
type Page struct {
	Page int
	Take int
}

// Offset смещение для SQL запроса
func (p Page) Offset() uint64 {
	if p.Page <= 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.Take)
}
