package models

import (
	"fmt"
	"time"
)

// PropertyRequest 用户发布的求购/求租需求
type PropertyRequest struct {
	ID                   uint          `gorm:"primaryKey" json:"id"`
	UserID               uint          `gorm:"index;not null" json:"user_id"`
	PropertyTypeID       uint          `gorm:"not null" json:"property_type_id"`
	LookingForCategoryID uint          `gorm:"not null" json:"looking_for_category_id"`
	Location             string        `gorm:"type:varchar(150);not null" json:"location"`
	Latitude             *float64      `json:"latitude"`
	Longitude            *float64      `json:"longitude"`
	GeocodeStatus        GeocodeStatus `gorm:"type:varchar(20);not null;default:pending" json:"geocode_status"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`

	// Relations
	PropertyType       *PropertyType       `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
	LookingForCategory *LookingForCategory `gorm:"foreignKey:LookingForCategoryID" json:"looking_for_category,omitempty"`
}

// MapMarker 生成地图标记数据，未成功解析的需求返回nil
func (r *PropertyRequest) MapMarker() *MapMarker {
	if r.GeocodeStatus != GeocodeResolved || r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &MapMarker{
		Latitude:       *r.Latitude,
		Longitude:      *r.Longitude,
		InfowindowHTML: fmt.Sprintf("<h4>%s</h4>", r.Location),
		MarkerIcon:     defaultMarkerIcon(),
	}
}
