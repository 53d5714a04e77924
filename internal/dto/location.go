package dto

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	Name      string   `json:"name"      binding:"required,max=150"`
	Address   string   `json:"address"   binding:"omitempty,max=300"`
	City      string   `json:"city"      binding:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Rating    *float64 `json:"rating"    binding:"omitempty,min=1,max=5"`
}

// UpdateLocationRequest 更新地点请求
type UpdateLocationRequest struct {
	Name      string   `json:"name"      binding:"required,max=150"`
	Address   string   `json:"address"   binding:"omitempty,max=300"`
	City      string   `json:"city"      binding:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Rating    *float64 `json:"rating"    binding:"omitempty,min=1,max=5"`
	IsActive  *bool    `json:"is_active"`
}
