package dto

// FollowListResponse 关注/粉丝列表响应
type FollowListResponse struct {
	Total int64           `json:"total"`
	List  []UserBriefInfo `json:"list"`
}

// ReportCreateRequest 举报请求
type ReportCreateRequest struct {
	ReportType string `json:"report_type" binding:"required,oneof=spam harassment 'rules violation' terrorism other"`
	Context    string `json:"context"` // 类型为other时必填
}

// HighlightCreateRequest 划线评论请求
type HighlightCreateRequest struct {
	Text    string `json:"text" binding:"required"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

// HighlightResponse 划线评论响应
type HighlightResponse struct {
	ID        uint          `json:"id"`
	Text      string        `json:"text"`
	Comment   string        `json:"comment"`
	ArticleID uint          `json:"article_id"`
	User      UserBriefInfo `json:"user"`
	CreatedAt string        `json:"created_at"`
}

// BookmarkResponse 书签响应
type BookmarkResponse struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	ImgURL    string `json:"img_url"`
	CreatedAt string `json:"created_at"` // 加入书签的时间
}

// BookmarkListResponse 书签列表响应
type BookmarkListResponse struct {
	Total int64              `json:"total"`
	List  []BookmarkResponse `json:"list"`
}
