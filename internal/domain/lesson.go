package domain

import "fmt"

// Lesson учебная пара, на которую бронируется зал
type Lesson string

const (
	Lesson1 Lesson = "LESSON1"
	Lesson2 Lesson = "LESSON2"
	Lesson3 Lesson = "LESSON3"
)

// Lessons список пар в порядке отображения
var Lessons = []Lesson{Lesson1, Lesson2, Lesson3}

var lessonTitles = map[Lesson]string{
	Lesson1: "Lesson 1",
	Lesson2: "Lesson 2",
	Lesson3: "Lesson 3",
}

// Valid проверяет, что пара входит в расписание
func (l Lesson) Valid() bool {
	_, ok := lessonTitles[l]
	return ok
}

// Title человекочитаемое название пары
func (l Lesson) Title() string {
	if title, ok := lessonTitles[l]; ok {
		return title
	}
	return string(l)
}

// ParseLesson разбирает строковое значение пары
func ParseLesson(s string) (Lesson, error) {
	l := Lesson(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: unknown lesson %q", ErrValidation, s)
	}
	return l, nil
}
