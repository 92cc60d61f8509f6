package models

import "time"

// Contact 从用户通讯录批量导入的联系人，只批量创建，不单独编辑
type Contact struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Name          string    `gorm:"type:varchar(100)" json:"name"`
	Email         string    `gorm:"type:varchar(100)" json:"email"`
	ImportBatchID string    `gorm:"type:varchar(36);index" json:"import_batch_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
