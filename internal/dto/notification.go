package dto

// NotificationListRequest 通知列表请求
type NotificationListRequest struct {
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
	IsRead   *bool `form:"is_read"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        uint           `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	IsRead    bool           `json:"is_read"`
	Sender    *UserBriefInfo `json:"sender,omitempty"`
	ArticleID *uint          `json:"article_id,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// NotificationListResponse 通知列表响应
type NotificationListResponse struct {
	Total       int64                  `json:"total"`
	UnreadCount int64                  `json:"unread_count"`
	List        []NotificationResponse `json:"list"`
}
