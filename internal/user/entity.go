// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           int64      `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

func (u *User) IsDelivery() bool {
	return u.Role == RoleDelivery
}

const (
	RoleDelivery = "delivery"
	RoleClient   = "client"
)

func ValidRole(role string) bool {
	return role == RoleDelivery || role == RoleClient
}
