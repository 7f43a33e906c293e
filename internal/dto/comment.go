package dto

import (
	"time"
)

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	Body string `json:"body" binding:"required,min=1,max=1000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}

// CommentSnapshotInfo 评论历史快照信息
type CommentSnapshotInfo struct {
	Body string    `json:"body"`
	Time time.Time `json:"time"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        uint                  `json:"id"`
	Body      string                `json:"body"`
	ArticleID uint                  `json:"article_id"`
	UserID    uint                  `json:"user_id"`
	Edited    bool                  `json:"edited"`
	History   []CommentSnapshotInfo `json:"history,omitempty"`
	User      UserBriefInfo         `json:"user"`
	LikeCount int64                 `json:"like_count"`
	LikedByMe bool                  `json:"liked_by_me"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

// CommentListRequest 评论列表请求
type CommentListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CommentListResponse 评论列表响应
type CommentListResponse struct {
	Total int64             `json:"total"`
	List  []CommentResponse `json:"list"`
}
