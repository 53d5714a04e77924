package dto

// CreateOrganizerRequest 创建主办方请求
type CreateOrganizerRequest struct {
	Name    string   `json:"name"    binding:"required,max=150"`
	Email   string   `json:"email"   binding:"omitempty,email"`
	Website string   `json:"website" binding:"omitempty,max=255"`
	Rating  *float64 `json:"rating"  binding:"omitempty,min=1,max=5"`
}

// UpdateOrganizerRequest 更新主办方请求
type UpdateOrganizerRequest struct {
	Name    string   `json:"name"    binding:"required,max=150"`
	Email   string   `json:"email"   binding:"omitempty,email"`
	Website string   `json:"website" binding:"omitempty,max=255"`
	Rating  *float64 `json:"rating"  binding:"omitempty,min=1,max=5"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name  string `json:"name"  binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,len=7"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name  string `json:"name"  binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,len=7"`
}

// CreateSeriesRequest 创建活动系列请求
type CreateSeriesRequest struct {
	Name         string  `json:"name" binding:"required,max=150"`
	CategoryGUID *string `json:"category_guid"`
	LocationGUID *string `json:"location_guid"`
}

// UpdateSeriesRequest 更新活动系列请求
type UpdateSeriesRequest struct {
	Name         string  `json:"name" binding:"required,max=150"`
	CategoryGUID *string `json:"category_guid"`
	LocationGUID *string `json:"location_guid"`
}
