package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/ahaven/authors-haven-api/pkg/auth"
	"github.com/ahaven/authors-haven-api/pkg/mail"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	userService     *UserService
	userServiceOnce sync.Once
)

// UserService 用户服务
type UserService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	mail   mail.Sender
}

// NewUserService 创建用户服务实例
func NewUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = &UserService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
			mail:   mail.GetSender(),
		}
	})
	return userService
}

// randomToken 生成用于邮箱验证和密码重置的随机令牌
func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}

// Register 用户注册
// 注册成功后异步发送验证邮件
func (s *UserService) Register(req *dto.RegisterRequest) (*model.User, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("用户名已存在")
	}
	if err := s.db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("邮箱已被注册")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:          req.Username,
		Email:             req.Email,
		Password:          string(hashed),
		Role:              model.RoleUser,
		VerificationToken: randomToken(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	// 验证邮件发送失败不影响注册
	go s.sendVerificationMail(user)

	return user, nil
}

// sendVerificationMail 发送邮箱验证邮件
func (s *UserService) sendVerificationMail(user *model.User) {
	if s.mail == nil {
		return
	}
	link := fmt.Sprintf("%s/verify-email?email=%s&token=%s",
		config.GlobalConfig.Frontend.BaseURL, user.Email, user.VerificationToken)
	body := fmt.Sprintf("<p>欢迎加入，%s！</p><p>请点击链接完成邮箱验证：<a href=\"%s\">%s</a></p>",
		user.Username, link, link)
	if err := s.mail.Send([]string{user.Email}, "邮箱验证", body); err != nil {
		s.logger.Errorf("发送验证邮件失败: 用户=%d err=%v", user.ID, err)
	}
}

// Login 用户登录，成功返回JWT令牌
func (s *UserService) Login(req *dto.LoginRequest) (string, error) {
	var user model.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", invalidParam("邮箱或密码错误")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", invalidParam("邮箱或密码错误")
	}

	return auth.GenerateToken(user.ID, user.Username, user.Role, req.Remember)
}

// Logout 注销当前令牌
func (s *UserService) Logout(token string) error {
	return auth.RevokeToken(token)
}

// VerifyEmail 校验邮箱验证令牌
func (s *UserService) VerifyEmail(req *dto.VerifyEmailRequest) error {
	var user model.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	if user.IsVerified == 1 {
		return nil
	}
	if user.VerificationToken == "" || user.VerificationToken != req.Token {
		return invalidParam("验证令牌无效")
	}

	return s.db.Model(&user).Updates(map[string]any{
		"is_verified":        1,
		"verification_token": "",
	}).Error
}

// ForgotPassword 发起密码重置，生成限时令牌并邮件发送
// 邮箱未注册时同样返回成功，避免暴露注册信息
func (s *UserService) ForgotPassword(req *dto.ForgotPasswordRequest) error {
	var user model.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := randomToken()
	expires := time.Now().Add(time.Hour)
	if err := s.db.Model(&user).Updates(map[string]any{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}).Error; err != nil {
		return err
	}

	go func() {
		if s.mail == nil {
			return
		}
		link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
			config.GlobalConfig.Frontend.BaseURL, user.Email, token)
		body := fmt.Sprintf("<p>请点击链接重置密码（一小时内有效）：<a href=\"%s\">%s</a></p>", link, link)
		if err := s.mail.Send([]string{user.Email}, "重置密码", body); err != nil {
			s.logger.Errorf("发送重置密码邮件失败: 用户=%d err=%v", user.ID, err)
		}
	}()

	return nil
}

// ResetPassword 使用重置令牌设置新密码
func (s *UserService) ResetPassword(req *dto.ResetPasswordRequest) error {
	var user model.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	if user.ResetPasswordToken == "" || user.ResetPasswordToken != req.Token {
		return invalidParam("重置令牌无效")
	}
	if time.Now().After(user.ResetPasswordExpires) {
		return invalidParam("重置令牌已过期")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]any{
		"password":               string(hashed),
		"reset_password_token":   "",
		"reset_password_expires": time.Time{},
	}).Error
}

// SocialLogin 第三方登录，首次登录自动建号
func (s *UserService) SocialLogin(req *dto.SocialLoginRequest) (string, error) {
	providerColumn := ""
	switch req.Provider {
	case "google":
		providerColumn = "google_id"
	case "facebook":
		providerColumn = "facebook_id"
	case "twitter":
		providerColumn = "twitter_id"
	default:
		return "", invalidParam("不支持的登录方式")
	}

	var user model.User
	err := s.db.Where(providerColumn+" = ?", req.ProviderID).First(&user).Error
	if err == nil {
		return auth.GenerateToken(user.ID, user.Username, user.Role, false)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// 邮箱已注册则绑定第三方账号
	err = s.db.Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		if err := s.db.Model(&user).Update(providerColumn, req.ProviderID).Error; err != nil {
			return "", err
		}
		return auth.GenerateToken(user.ID, user.Username, user.Role, false)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// 首次登录，创建新用户
	username := req.Username
	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		username = fmt.Sprintf("%s-%d", username, time.Now().Unix())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(randomToken()), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user = model.User{
		Username:   username,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       model.RoleUser,
		IsVerified: 1, // 第三方已验证过邮箱
	}
	switch req.Provider {
	case "google":
		user.GoogleID = req.ProviderID
	case "facebook":
		user.FacebookID = req.ProviderID
	case "twitter":
		user.TwitterID = req.ProviderID
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}

	return auth.GenerateToken(user.ID, user.Username, user.Role, false)
}

// GetProfile 获取用户资料
// viewerID为当前登录用户，用于计算关注状态和决定敏感字段是否展示
func (s *UserService) GetProfile(username string, viewerID *uint) (*dto.ProfileResponse, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("用户不存在")
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{
		ID:         user.ID,
		Username:   user.Username,
		Bio:        user.Bio,
		Image:      user.Image,
		IsVerified: user.IsVerified == 1,
	}

	if viewerID != nil {
		if *viewerID == user.ID {
			// 本人可见完整资料
			resp.Email = user.Email
			resp.Role = user.Role
			resp.EmailNotifications = user.EmailNotifications == 1
			resp.AppNotifications = user.AppNotifications == 1
		} else {
			var count int64
			s.db.Model(&model.Follow{}).
				Where("follower_id = ? AND followed_id = ?", *viewerID, user.ID).
				Count(&count)
			resp.Following = count > 0
		}
	}
	return resp, nil
}

// UpdateProfile 更新个人资料，未提供的字段保持原值
func (s *UserService) UpdateProfile(userID uint, req *dto.ProfileUpdateRequest) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, invalidParam("用户名不能为空")
		}
		if username != user.Username {
			var count int64
			if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, conflict("用户名已存在")
			}
			updates["username"] = username
		}
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) == 0 {
		return &user, nil
	}

	oldUsername := user.Username
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		// 阅读统计按作者用户名归属，改名时一并迁移
		if newName, ok := updates["username"]; ok {
			if err := tx.Model(&model.Statistics{}).
				Where("author = ?", oldUsername).
				Update("author", newName).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(userID uint, req *dto.ChangePasswordRequest) error {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return invalidParam("原密码错误")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", string(hashed)).Error
}

// UpdateNotificationPreferences 更新通知偏好，两个开关互相独立
func (s *UserService) UpdateNotificationPreferences(userID uint, req *dto.NotificationPreferenceRequest) error {
	updates := make(map[string]any)
	if req.EmailNotifications != nil {
		updates["email_notifications"] = boolToInt(*req.EmailNotifications)
	}
	if req.AppNotifications != nil {
		updates["app_notifications"] = boolToInt(*req.AppNotifications)
	}
	if len(updates) == 0 {
		return invalidParam("缺少需要更新的开关")
	}
	return s.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ListUsers 管理员分页查询用户
func (s *UserService) ListUsers(req *dto.UserListRequest) ([]model.User, int64, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	query := s.db.Model(&model.User{})
	if req.Keyword != "" {
		like := "%" + req.Keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	return users, total, err
}

// AssignRole 分配角色，仅superAdmin可调用（由路由层保证）
func (s *UserService) AssignRole(operatorID, targetID uint, role string) error {
	if operatorID == targetID {
		return invalidParam("不能修改自己的角色")
	}

	var user model.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	return s.db.Model(&user).Update("role", role).Error
}

// DeleteUser 删除用户及其全部关联数据
func (s *UserService) DeleteUser(targetID uint) error {
	var user model.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("用户不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// 先清理用户发表的文章及其关联
		var articleIDs []uint
		if err := tx.Model(&model.Article{}).Where("user_id = ?", targetID).
			Pluck("id", &articleIDs).Error; err != nil {
			return err
		}

		// 将被删除的评论：用户自己发的，以及其文章下他人发的
		// 先按评论ID清掉所有人留下的点赞记录
		commentQuery := tx.Model(&model.Comment{}).Where("user_id = ?", targetID)
		if len(articleIDs) > 0 {
			commentQuery = tx.Model(&model.Comment{}).
				Where("user_id = ? OR article_id IN ?", targetID, articleIDs)
		}
		var commentIDs []uint
		if err := commentQuery.Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&model.CommentReaction{}).Error; err != nil {
				return err
			}
		}

		if len(articleIDs) > 0 {
			var slugs []string
			if err := tx.Model(&model.Article{}).Where("id IN ?", articleIDs).
				Pluck("slug", &slugs).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.ArticleTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.Bookmark{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.HighlightedText{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id IN ?", articleIDs).Delete(&model.Report{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_slug IN ?", slugs).Delete(&model.Rating{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", articleIDs).Delete(&model.Article{}).Error; err != nil {
				return err
			}
		}

		// 再清理用户自身产生的数据
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.HighlightedText{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", targetID, targetID).
			Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR sender_id = ?", targetID, targetID).
			Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		// 阅读统计按作者用户名归属，随账号一并清除
		if err := tx.Where("author = ?", user.Username).
			Delete(&model.Statistics{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}
