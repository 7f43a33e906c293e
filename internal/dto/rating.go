package dto

// RatingCreateRequest 评分请求
type RatingCreateRequest struct {
	Rating string `json:"rating" binding:"required,oneof=1 2 3 4 5"`
}

// RatingResponse 评分响应
type RatingResponse struct {
	ArticleSlug   string `json:"article_slug"`
	AverageRating string `json:"average_rating"` // 保留一位小数，无评分时为"0"
	RatingCount   int64  `json:"rating_count"`
}

// AuthorRatingResponse 作者平均评分响应
type AuthorRatingResponse struct {
	Author        string `json:"author"`
	AverageRating string `json:"average_rating"`
	RatingCount   int64  `json:"rating_count"`
}
