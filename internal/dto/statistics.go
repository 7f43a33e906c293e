package dto

// StatisticsQueryRequest 阅读统计查询请求
// 指定month时必须同时指定year
type StatisticsQueryRequest struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2200"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// StatisticsResponse 阅读统计响应
type StatisticsResponse struct {
	ArticleSlug string `json:"article_slug"`
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	ReadCount   int64  `json:"read_count"`
}
