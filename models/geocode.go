package models

// GeocodeStatus 地址解析状态，替代用空坐标隐式表达失败
type GeocodeStatus string

const (
	// GeocodePending 尚未进行地址解析
	GeocodePending GeocodeStatus = "pending"
	// GeocodeResolved 地址解析成功，坐标可用
	GeocodeResolved GeocodeStatus = "resolved"
	// GeocodeUnresolved 地址解析失败，坐标为空
	GeocodeUnresolved GeocodeStatus = "unresolved"
)

// MarkerIcon 地图标记图标
type MarkerIcon struct {
	Picture string `json:"picture"`
	Width   string `json:"width"`
	Height  string `json:"height"`
}

// MapMarker 前端地图渲染用的标记数据
type MapMarker struct {
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	InfowindowHTML string     `json:"infowindow_html"`
	MarkerIcon     MarkerIcon `json:"marker_icon"`
}

// defaultMarkerIcon 用户房源在地图上的默认图标
func defaultMarkerIcon() MarkerIcon {
	return MarkerIcon{
		Picture: "/assets/user.png",
		Width:   "30",
		Height:  "40",
	}
}
