package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskAttachment records a file attached to a task. StorageRef is an opaque
// handle into the file store; upload mechanics live outside this service.
type TaskAttachment struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	TaskID     uint64         `gorm:"not null;index" json:"task_id"`
	Filename   string         `gorm:"type:varchar(255);not null" json:"filename"`
	StorageRef string         `gorm:"type:varchar(255);not null" json:"storage_ref"`
	UploadedBy uint64         `gorm:"not null" json:"uploaded_by"`
	UploadedAt time.Time      `json:"uploaded_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task     Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Uploader User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
