package domain

import "time"

type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null" json:"user_id"`
	BoardID    uint   `gorm:"not null;index" json:"board_id"`
	CategoryID uint   `gorm:"index" json:"category_id"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	LikesCount int    `gorm:"not null;default:0" json:"likes_count"`
	Season     string `json:"season,omitempty"`

	// Featured-on-carousel flag, toggled by admins.
	IsCarousel bool `gorm:"not null;default:false;index" json:"is_carousel"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
