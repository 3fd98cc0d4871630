package userservice

// Роли пользователей
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Profile профиль пользователя из UserService
type Profile struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Role       string `json:"role"`
}

// IsTeacher проверяет, что пользователь преподаватель
func (p *Profile) IsTeacher() bool {
	return p.Role == RoleTeacher
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
