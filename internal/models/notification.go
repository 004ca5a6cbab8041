// internal/models/notification.go
package models

type Notification struct {
	BaseModel
	UserID  string           `json:"user_id" gorm:"size:64;index;not null"`
	Title   string           `json:"title" gorm:"size:255"`
	Message string           `json:"message" gorm:"type:text"`
	Type    NotificationType `json:"type" gorm:"type:varchar(20);default:'info'"`
	Read    bool             `json:"read" gorm:"default:false"`
	Data    JSONB            `json:"data,omitempty" gorm:"type:jsonb"`
}
