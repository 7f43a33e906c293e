package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	commentService     *CommentService
	commentServiceOnce sync.Once
)

// CommentService 评论服务
type CommentService struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	notifier *NotificationService
}

// NewCommentService 创建评论服务实例
func NewCommentService() *CommentService {
	commentServiceOnce.Do(func() {
		commentService = &CommentService{
			db:       database.GetDB(),
			logger:   logger.GetSugaredLogger(),
			notifier: NewNotificationService(),
		}
	})
	return commentService
}

// Create 在文章下创建评论
func (s *CommentService) Create(userID uint, slug string, req *dto.CommentCreateRequest) (*model.Comment, error) {
	var article model.Article
	if err := s.db.Preload("Author").Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	comment := &model.Comment{
		Body:      req.Body,
		ArticleID: article.ID,
		UserID:    userID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(comment, comment.ID).Error; err != nil {
		return nil, err
	}

	// 异步向收藏该文章的用户推送新评论通知
	if s.notifier != nil {
		s.notifier.NotifyNewComment(comment, &article)
	}

	return comment, nil
}

// Update 编辑评论，旧正文追加到历史记录
// 与当前正文相同的编辑视为无操作，直接返回且不做任何变更
func (s *CommentService) Update(id uint, userID uint, req *dto.CommentUpdateRequest) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("评论不存在")
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, noPermission("只能编辑自己的评论")
	}

	if strings.TrimSpace(req.Body) == "" {
		return nil, invalidParam("评论内容不能为空")
	}

	// 无变化的编辑不产生历史记录
	if req.Body == comment.Body {
		return &comment, nil
	}

	// 先把编辑前的正文快照压入历史，再应用新正文
	history := append(comment.History, model.CommentSnapshot{
		Body: comment.Body,
		Time: comment.UpdatedAt,
	})

	updates := map[string]interface{}{
		"body":    req.Body,
		"edited":  1,
		"history": history,
	}
	if err := s.db.Model(&comment).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除评论，连带清理评论点赞
func (s *CommentService) Delete(id uint, userID uint, isAdmin bool) error {
	var comment model.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("评论不存在")
		}
		return err
	}

	if !isAdmin && comment.UserID != userID {
		return noPermission("只能删除自己的评论")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
}

// GetByID 获取单条评论（含编辑历史）
func (s *CommentService) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("评论不存在")
		}
		return nil, err
	}
	return &comment, nil
}

// List 获取文章的评论列表
func (s *CommentService) List(slug string, req *dto.CommentListRequest, viewerID *uint) (*dto.CommentListResponse, error) {
	var article model.Article
	if err := s.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("文章不存在")
		}
		return nil, err
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&model.Comment{}).Where("article_id = ?", article.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []model.Comment
	if err := query.Preload("User").
		Order("created_at ASC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	resp := &dto.CommentListResponse{
		Total: total,
		List:  make([]dto.CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.List = append(resp.List, *s.BuildResponse(&comments[i], viewerID))
	}
	return resp, nil
}

// ToggleReaction 切换评论点赞状态
// 记录存在则删除并返回false（取消点赞），不存在则创建并返回true（点赞）
func (s *CommentService) ToggleReaction(userID, commentID uint) (bool, error) {
	var comment model.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, notFound("评论不存在")
		}
		return false, err
	}

	var reaction model.CommentReaction
	result := s.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&reaction)
	if result.Error == nil {
		// 已点赞，取消
		if err := s.db.Delete(&reaction).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}

	// 未点赞，创建
	newReaction := &model.CommentReaction{
		UserID:    userID,
		CommentID: commentID,
		IsLiked:   1,
	}
	if err := s.db.Create(newReaction).Error; err != nil {
		return false, err
	}
	return true, nil
}

// BuildResponse 构造评论响应DTO
func (s *CommentService) BuildResponse(comment *model.Comment, viewerID *uint) *dto.CommentResponse {
	history := make([]dto.CommentSnapshotInfo, 0, len(comment.History))
	for _, snap := range comment.History {
		history = append(history, dto.CommentSnapshotInfo{
			Body: snap.Body,
			Time: snap.Time,
		})
	}

	var likeCount int64
	if err := s.db.Model(&model.CommentReaction{}).
		Where("comment_id = ?", comment.ID).Count(&likeCount).Error; err != nil {
		s.logger.Warnf("统计评论点赞数失败: %v", err)
	}

	likedByMe := false
	if viewerID != nil {
		var count int64
		if err := s.db.Model(&model.CommentReaction{}).
			Where("user_id = ? AND comment_id = ?", *viewerID, comment.ID).
			Count(&count).Error; err == nil {
			likedByMe = count > 0
		}
	}

	resp := &dto.CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		ArticleID: comment.ArticleID,
		UserID:    comment.UserID,
		Edited:    comment.Edited == 1,
		History:   history,
		LikeCount: likeCount,
		LikedByMe: likedByMe,
		CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: comment.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if comment.User.ID > 0 {
		resp.User = dto.UserBriefInfo{
			ID:       comment.User.ID,
			Username: comment.User.Username,
			Image:    comment.User.Image,
		}
	}

	return resp
}
