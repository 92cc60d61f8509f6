package models

import (
	"time"

	"gorm.io/gorm"

	"homes-http-service/utils"
)

// Admin represents system administrators who curate reference data
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Email     string    `gorm:"type:varchar(100)" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave 是一个GORM钩子，在保存记录前运行（创建时同样触发）
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	if a.Password != "" && !utils.IsBcryptHash(a.Password) {
		hashedPassword, err := utils.HashPassword(a.Password)
		if err != nil {
			return err
		}
		a.Password = hashedPassword
	}
	return nil
}
