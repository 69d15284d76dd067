package domain

import "time"

// Role роль пользователя
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// User пользователь системы (создаётся подсистемой регистрации, здесь только читается)
type User struct {
	ID             int64
	Role           Role
	FullName       string
	Email          string
	Specialization *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
