package models

// AuditLog records authenticated mutations of budgets and line items.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"index" json:"userId"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resourceType"`
	ResourceID   uint   `json:"resourceId"`
	IPAddress    string `json:"ipAddress"`
	Changes      string `json:"changes,omitempty"`
}
