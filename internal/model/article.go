package model

import "time"

type KnowledgeCategory string

const (
	CategoryNetworkConnectivity KnowledgeCategory = "NetworkConnectivity"
	CategoryAccountPasswords    KnowledgeCategory = "AccountPasswords"
	CategoryGeneralSupport      KnowledgeCategory = "GeneralSupport"
	CategoryWindowsSupport      KnowledgeCategory = "WindowsSupport"
	CategorySoftwareSupport     KnowledgeCategory = "SoftwareSupport"
	CategoryHardwareSupport     KnowledgeCategory = "HardwareSupport"
	CategoryPrintersPeripherals KnowledgeCategory = "PrintersPeripherals"
)

func (c KnowledgeCategory) Valid() bool {
	switch c {
	case CategoryNetworkConnectivity, CategoryAccountPasswords, CategoryGeneralSupport,
		CategoryWindowsSupport, CategorySoftwareSupport, CategoryHardwareSupport,
		CategoryPrintersPeripherals:
		return true
	}
	return false
}

// KBArticle is a self-help article. ViewCount is incremented server-side per
// detail view; deduplicating remounts is the client's problem.
type KBArticle struct {
	ID        uint64            `gorm:"primaryKey" json:"id"`
	Title     string            `gorm:"type:varchar(200);not null" json:"title"`
	Body      string            `gorm:"type:text;not null" json:"body"`
	Category  KnowledgeCategory `gorm:"type:varchar(32);index;not null" json:"category"`
	Tags      []string          `gorm:"serializer:json;type:text" json:"tags"`
	ViewCount int64             `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
