package models

import (
	"time"

	"gorm.io/gorm"

	"homes-http-service/utils"
)

// User represents a registered property owner or seeker
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations，用户删除时级联删除
	Profile          *Profile          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	PropertyListings []PropertyListing `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"property_listings,omitempty"`
	PropertyRequests []PropertyRequest `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"property_requests,omitempty"`
	Contacts         []Contact         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"contacts,omitempty"`
}

// BeforeSave 是一个GORM钩子，在保存记录前运行（创建时同样触发）
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && !utils.IsBcryptHash(u.Password) {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
