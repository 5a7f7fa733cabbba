package models

import "time"

// Review is a user's log entry for one film, one show or one season of a
// show. Season is NULL for films and for whole-show reviews.
type Review struct {
	ID        int32         `gorm:"primaryKey" json:"id"`
	UserID    int32         `gorm:"not null;uniqueIndex:idx_review_key,priority:1" json:"user_id"`
	TmdbID    int32         `gorm:"not null;uniqueIndex:idx_review_key,priority:2" json:"tmdb_id"`
	Category  MediaCategory `gorm:"type:varchar(16);not null;uniqueIndex:idx_review_key,priority:3" json:"category"`
	Season    *int32        `gorm:"uniqueIndex:idx_review_key,priority:4" json:"season"`
	Status    WatchStatus   `gorm:"type:varchar(16);not null" json:"status"`
	Text      string        `gorm:"not null;default:''" json:"text"`
	FunBefore bool          `gorm:"not null;default:false" json:"fun_before"`
	FunDuring bool          `gorm:"not null;default:false" json:"fun_during"`
	FunAfter  bool          `gorm:"not null;default:false" json:"fun_after"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}
