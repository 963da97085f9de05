package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the shared record shape every domain table embeds: identity,
// audit timestamps, a soft-delete marker and a version counter.
//
// Soft deletion is deliberately modeled as an explicit boolean plus timestamp
// instead of gorm.DeletedAt: deleted rows must stay reachable for audit
// lookups, and excluding them is a contract each repository upholds in its
// queries, not an automatic scope on the base.
type Entity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Version int `gorm:"not null;default:1" json:"version"`
}

// BeforeCreate assigns an ID when the database default is not in play
// (in-memory repositories, pre-assigned fixtures).
func (e *Entity) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}

// BeforeUpdate bumps the version counter on every mutation. The counter is
// informational: it is not checked as an optimistic-concurrency guard.
func (e *Entity) BeforeUpdate(_ *gorm.DB) error {
	e.Version++
	return nil
}

// SoftDelete marks the record deleted without removing the row. Calling it
// on an already-deleted record leaves the state equivalent. Related records
// are not cascaded.
func (e *Entity) SoftDelete(now time.Time) {
	e.IsDeleted = true
	e.DeletedAt = &now
}
