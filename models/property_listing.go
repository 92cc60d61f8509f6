package models

import (
	"fmt"
	"time"
)

// PropertyListing 用户发布的自有房源
type PropertyListing struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	UserID            uint          `gorm:"index;not null" json:"user_id"`
	PropertyTypeID    uint          `gorm:"not null" json:"property_type_id"`
	OwnershipTypeID   uint          `gorm:"not null" json:"ownership_type_id"`
	Location          string        `gorm:"type:varchar(150);not null" json:"location"`
	Latitude          *float64      `json:"latitude"`  // 由地址解析得出，不接受客户端提交
	Longitude         *float64      `json:"longitude"` // 由地址解析得出，不接受客户端提交
	GeocodeStatus     GeocodeStatus `gorm:"type:varchar(20);not null;default:pending" json:"geocode_status"`
	IsCurrentLocation bool          `json:"is_current_location"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	// Relations
	PropertyType  *PropertyType  `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
	OwnershipType *OwnershipType `gorm:"foreignKey:OwnershipTypeID" json:"ownership_type,omitempty"`
}

// MapMarker 生成地图标记数据，未成功解析的房源返回nil
func (l *PropertyListing) MapMarker() *MapMarker {
	if l.GeocodeStatus != GeocodeResolved || l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &MapMarker{
		Latitude:       *l.Latitude,
		Longitude:      *l.Longitude,
		InfowindowHTML: fmt.Sprintf("<h4>%s</h4>", l.Location),
		MarkerIcon:     defaultMarkerIcon(),
	}
}
