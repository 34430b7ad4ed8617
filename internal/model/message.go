package model

import (
	"sort"
	"time"
)

// ChatMessage belongs to exactly one ticket and is visible to its two
// participants. Recipient is always the participant opposite the sender.
type ChatMessage struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	TicketID      uint64 `gorm:"index;not null" json:"ticket_id"`
	Sender        string `gorm:"index;not null" json:"sender"`
	Recipient     string `gorm:"index;not null" json:"recipient"`
	Content       string `gorm:"type:text;not null" json:"content"`
	AttachmentURL string `gorm:"type:text" json:"attachment_url,omitempty"`
	IsRead        bool   `gorm:"not null;default:false" json:"is_read"`
	Delivered     bool   `gorm:"not null;default:true" json:"delivered"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// SortMessages orders messages by timestamp ascending, breaking ties by id so
// the order is stable across fetches. Storage does not guarantee delivery
// order when threads are merged across tickets.
func SortMessages(msgs []ChatMessage) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
