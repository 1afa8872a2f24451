package user

import (
	"database/sql"
	"time"
)

// DB行に対応（スキャン用）
type userRow struct {
	ID           uint64
	FirstName    string
	MiddleName   sql.NullString
	LastName     string
	UserName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	ProfilePhoto sql.NullString
	UserType     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type User struct {
	ID           uint64
	FirstName    string
	MiddleName   *string
	LastName     string
	UserName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	ProfilePhoto *string
	UserType     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r userRow) toModel() User {
	u := User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		UserName:     r.UserName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		PhoneNumber:  r.PhoneNumber,
		UserType:     r.UserType,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.MiddleName.Valid {
		m := r.MiddleName.String
		u.MiddleName = &m
	}
	if r.ProfilePhoto.Valid {
		p := r.ProfilePhoto.String
		u.ProfilePhoto = &p
	}
	return u
}

// toDTO: password はシリアライズ対象に含めない
func (u User) toDTO() UserResponse {
	return UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		ProfilePhoto: u.ProfilePhoto,
		UserType:     u.UserType,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}
