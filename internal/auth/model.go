package auth

import (
	"time"

	"github.com/peopleops/corehr/internal/model"
)

// AccountStatus is derived from stored fields at evaluation time; there is
// no status column.
type AccountStatus int

const (
	// StatusActive allows login.
	StatusActive AccountStatus = iota
	// StatusLocked refuses login until locked_until passes.
	StatusLocked
	// StatusInactive refuses login after the password checks out.
	StatusInactive
)

func (s AccountStatus) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusInactive:
		return "inactive"
	default:
		return "active"
	}
}

type User struct {
	model.Entity

	Name         string `gorm:"size:100;not null;index" json:"name"`
	Email        string `gorm:"size:150;not null;index" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`

	Role        string `gorm:"size:50;not null;default:employee" json:"role"`
	IsActive    bool   `gorm:"not null;default:true;index" json:"is_active"`
	IsSuperuser bool   `gorm:"not null;default:false" json:"is_superuser"`

	Phone  string `gorm:"size:20" json:"phone,omitempty"`
	Mobile string `gorm:"size:20" json:"mobile,omitempty"`

	AvatarURL string `gorm:"size:500" json:"avatar_url,omitempty"`
	Language  string `gorm:"size:10;default:en" json:"language"`
	Timezone  string `gorm:"size:50;default:UTC" json:"timezone"`

	LastLogin           *time.Time `json:"last_login,omitempty"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	PasswordChangedAt   *time.Time `json:"-"`

	Preferences map[string]any `gorm:"serializer:json" json:"preferences,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Status computes the account state from locked_until and is_active.
// Lockout wins over deactivation.
func (u *User) Status(now time.Time) AccountStatus {
	if u.LockedUntil != nil && u.LockedUntil.After(now) {
		return StatusLocked
	}
	if !u.IsActive {
		return StatusInactive
	}
	return StatusActive
}
