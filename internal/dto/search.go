package dto

// SearchRequest 搜索请求
type SearchRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TagResponse 标签响应
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TrendingTagResponse 热门标签响应
type TrendingTagResponse struct {
	Name         string `json:"name"`
	ArticleCount int64  `json:"article_count"`
}
