package dto

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Body        string   `json:"body" binding:"required"`
	ImgURL      string   `json:"img_url"`
	Tags        []string `json:"tags"`
}

// ArticleUpdateRequest 更新文章请求，未提供的字段保持原值
type ArticleUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	ImgURL      *string   `json:"img_url"`
	Tags        *[]string `json:"tags"` // 提供时整体替换标签集合
}

// ArticleListRequest 文章列表请求
type ArticleListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ArticleResponse 文章响应
type ArticleResponse struct {
	ID            uint          `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Body          string        `json:"body"`
	RenderedBody  string        `json:"rendered_body,omitempty"` // 详情接口返回渲染后的HTML
	ImgURL        string        `json:"img_url"`
	Author        UserBriefInfo `json:"author"`
	Tags          []string      `json:"tags"`
	FavoriteCount int64         `json:"favorite_count"`
	Favorited     bool          `json:"favorited"` // 当前登录用户是否已收藏
	AverageRating string        `json:"average_rating"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

// ArticleListResponse 文章列表响应
type ArticleListResponse struct {
	Total int64             `json:"total"`
	List  []ArticleResponse `json:"list"`
}
