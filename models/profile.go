package models

import (
	"fmt"
	"time"
)

// Profile 用户资料，每个用户至多一份
type Profile struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName       string        `gorm:"type:varchar(20);not null" json:"first_name"`
	LastName        string        `gorm:"type:varchar(50);not null" json:"last_name"`
	DateOfBirth     string        `gorm:"type:varchar(20)" json:"date_of_birth"`
	Gender          string        `gorm:"type:varchar(10)" json:"gender"`
	MobileNumber    string        `gorm:"type:varchar(20);not null" json:"mobile_number"`
	AlternateNumber string        `gorm:"type:varchar(20)" json:"alternate_number"`
	WorkLocation    string        `gorm:"type:varchar(150);not null" json:"work_location"`
	Employer        string        `gorm:"type:varchar(100);not null" json:"employer"`
	Latitude        *float64      `json:"latitude"`
	Longitude       *float64      `json:"longitude"`
	GeocodeStatus   GeocodeStatus `gorm:"type:varchar(20);not null;default:pending" json:"geocode_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// MapMarker 生成工作地点的地图标记数据
func (p *Profile) MapMarker() *MapMarker {
	if p.GeocodeStatus != GeocodeResolved || p.Latitude == nil || p.Longitude == nil {
		return nil
	}
	return &MapMarker{
		Latitude:       *p.Latitude,
		Longitude:      *p.Longitude,
		InfowindowHTML: fmt.Sprintf("<h4>%s</h4><h4>%s</h4>", p.FirstName, p.WorkLocation),
		MarkerIcon:     defaultMarkerIcon(),
	}
}
