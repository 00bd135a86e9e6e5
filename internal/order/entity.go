// AngelaMos | 2026
// entity.go

package order

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDelivered  = "delivered"
)

type Order struct {
	ID        int64      `db:"id"         json:"id"`
	Address   string     `db:"address"    json:"address"`
	Status    string     `db:"status"     json:"status"`
	Total     float64    `db:"total"      json:"total"`
	UserID    int64      `db:"user_id"    json:"user_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusDelivered:
		return true
	}
	return false
}
