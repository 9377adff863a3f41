package models

import "time"

// User speciality values accepted by the API.
const (
	SpecialityBackend  = "backend"
	SpecialityFrontend = "frontend"
	SpecialityDevOps   = "devops"
	SpecialityQA       = "qa"
	SpecialityDesign   = "design"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Speciality   string
	Role         string // "user", "manager", "admin"
	Active       bool
	NotLocked    bool
	LockDate     *time.Time // set when the account was locked; nil once unlocked
	LastLoginAt  *time.Time
	JoinedAt     time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func ValidSpeciality(s string) bool {
	switch s {
	case SpecialityBackend, SpecialityFrontend, SpecialityDevOps, SpecialityQA, SpecialityDesign:
		return true
	}
	return false
}
