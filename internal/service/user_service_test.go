package service

import (
	"testing"
	"time"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	// 令牌相关用例需要JWT配置
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:           "test-secret",
			ExpireHours:         1,
			RememberExpireHours: 24,
			Issuer:              "test",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.VerificationToken)
	assert.Equal(t, model.RoleUser, user.Role)

	// 密码不以明文存储
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	// 用户名冲突
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "newcomer",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// 邮箱冲突
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "someone",
		Email:    "newcomer@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// 登录成功返回令牌
	token, err := svc.Login(&dto.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// 密码错误
	_, err = svc.Login(&dto.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 邮箱未注册
	_, err = svc.Login(&dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestVerifyEmail(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "verifyme",
		Email:    "verifyme@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// 错误令牌
	err = svc.VerifyEmail(&dto.VerifyEmailRequest{
		Email: "verifyme@example.com",
		Token: "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 正确令牌
	require.NoError(t, svc.VerifyEmail(&dto.VerifyEmailRequest{
		Email: "verifyme@example.com",
		Token: user.VerificationToken,
	}))

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 1, stored.IsVerified)
	assert.Empty(t, stored.VerificationToken)

	// 已验证用户重复验证为幂等操作
	require.NoError(t, svc.VerifyEmail(&dto.VerifyEmailRequest{
		Email: "verifyme@example.com",
		Token: "anything",
	}))
}

func TestResetPasswordFlow(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "forgetful",
		Email:    "forgetful@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// 未注册邮箱同样返回成功
	require.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "ghost@example.com"}))

	require.NoError(t, svc.ForgotPassword(&dto.ForgotPasswordRequest{Email: "forgetful@example.com"}))

	var stored model.User
	require.NoError(t, db.Where("email = ?", "forgetful@example.com").First(&stored).Error)
	require.NotEmpty(t, stored.ResetPasswordToken)

	// 错误令牌
	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:    "forgetful@example.com",
		Token:    "bogus",
		Password: "newpassword1",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	// 正确令牌
	require.NoError(t, svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:    "forgetful@example.com",
		Token:    stored.ResetPasswordToken,
		Password: "newpassword1",
	}))

	// 新密码生效
	_, err = svc.Login(&dto.LoginRequest{
		Email:    "forgetful@example.com",
		Password: "newpassword1",
	})
	assert.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	user := seedUser(t, db, "latecomer")
	require.NoError(t, db.Model(user).Updates(map[string]any{
		"reset_password_token":   "expired-token",
		"reset_password_expires": time.Now().Add(-time.Minute),
	}).Error)

	err := svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:    user.Email,
		Token:    "expired-token",
		Password: "newpassword1",
	})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestSocialLoginCreatesAndBinds(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	// 首次登录自动建号
	token, err := svc.SocialLogin(&dto.SocialLoginRequest{
		Provider:   "google",
		ProviderID: "google-123",
		Email:      "social@example.com",
		Username:   "socialite",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var user model.User
	require.NoError(t, db.Where("email = ?", "social@example.com").First(&user).Error)
	assert.Equal(t, "google-123", user.GoogleID)
	assert.Equal(t, 1, user.IsVerified)

	// 再次登录复用账号
	_, err = svc.SocialLogin(&dto.SocialLoginRequest{
		Provider:   "google",
		ProviderID: "google-123",
		Email:      "social@example.com",
		Username:   "socialite",
	})
	require.NoError(t, err)

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// 同邮箱的其他渠道登录绑定到现有账号
	_, err = svc.SocialLogin(&dto.SocialLoginRequest{
		Provider:   "twitter",
		ProviderID: "tw-456",
		Email:      "social@example.com",
		Username:   "socialite",
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Equal(t, "tw-456", user.TwitterID)
}

func TestUpdateProfileAndPreferences(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	user := seedUser(t, db, "editor")
	seedUser(t, db, "taken")

	// 用户名冲突
	taken := "taken"
	_, err := svc.UpdateProfile(user.ID, &dto.ProfileUpdateRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	// 部分字段更新
	bio := "写作是思考的方式"
	updated, err := svc.UpdateProfile(user.ID, &dto.ProfileUpdateRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "editor", updated.Username)

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, bio, stored.Bio)

	// 两个通知开关互相独立
	off := false
	require.NoError(t, svc.UpdateNotificationPreferences(user.ID, &dto.NotificationPreferenceRequest{
		EmailNotifications: &off,
	}))
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 0, stored.EmailNotifications)
	assert.Equal(t, 1, stored.AppNotifications)

	// 空请求报参数错误
	err = svc.UpdateNotificationPreferences(user.ID, &dto.NotificationPreferenceRequest{})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestUsernameRenameKeepsReadStatistics(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}
	stats := &StatisticsService{db: db, logger: testLogger(), now: time.Now}

	user := seedUser(t, db, "oldname")
	article := seedArticle(t, db, user, "改名前的文章")
	require.NoError(t, stats.RecordRead(article.Slug, user.Username))
	require.NoError(t, stats.RecordRead(article.Slug, user.Username))

	// 改名后统计随新用户名迁移
	newName := "newname"
	_, err := svc.UpdateProfile(user.ID, &dto.ProfileUpdateRequest{Username: &newName})
	require.NoError(t, err)

	var orphaned int64
	db.Model(&model.Statistics{}).Where("author = ?", "oldname").Count(&orphaned)
	assert.Equal(t, int64(0), orphaned)

	result, err := stats.GetReadStatisticsByUser(user.ID, article.Slug, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ReadCount)

	_, err = stats.GetReadStatisticsByUser(99999, article.Slug, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfileVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	owner := seedUser(t, db, "owner")
	visitor := seedUser(t, db, "visitor")
	require.NoError(t, db.Create(&model.Follow{FollowerID: visitor.ID, FollowedID: owner.ID}).Error)

	// 本人可见邮箱等敏感字段
	ownerID := owner.ID
	profile, err := svc.GetProfile("owner", &ownerID)
	require.NoError(t, err)
	assert.Equal(t, owner.Email, profile.Email)

	// 他人视角不含邮箱，但有关注状态
	visitorID := visitor.ID
	profile, err = svc.GetProfile("owner", &visitorID)
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
	assert.True(t, profile.Following)

	// 匿名视角
	profile, err = svc.GetProfile("owner", nil)
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
	assert.False(t, profile.Following)
}

func TestAssignRoleAndDeleteUser(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	admin := seedUser(t, db, "admin")
	target := seedUser(t, db, "target")

	// 不能修改自己的角色
	err := svc.AssignRole(admin.ID, admin.ID, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidParam)

	require.NoError(t, svc.AssignRole(admin.ID, target.ID, model.RoleAdmin))
	var stored model.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.Equal(t, model.RoleAdmin, stored.Role)

	// 删除用户时级联清理其数据
	article := seedArticle(t, db, &stored, "将随用户删除")
	require.NoError(t, db.Create(&model.Comment{Body: "评论", ArticleID: article.ID, UserID: target.ID}).Error)
	require.NoError(t, db.Create(&model.Favorite{UserID: admin.ID, ArticleID: article.ID}).Error)

	require.NoError(t, svc.DeleteUser(target.ID))

	var articleCount, commentCount, favoriteCount int64
	db.Model(&model.Article{}).Where("user_id = ?", target.ID).Count(&articleCount)
	db.Model(&model.Comment{}).Where("article_id = ?", article.ID).Count(&commentCount)
	db.Model(&model.Favorite{}).Where("article_id = ?", article.ID).Count(&favoriteCount)
	assert.Equal(t, int64(0), articleCount)
	assert.Equal(t, int64(0), commentCount)
	assert.Equal(t, int64(0), favoriteCount)

	err = svc.DeleteUser(target.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCleansStatisticsAndReactions(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{db: db, logger: testLogger()}

	target := seedUser(t, db, "departing")
	other := seedUser(t, db, "bystander")

	// 目标用户文章的阅读统计
	article := seedArticle(t, db, target, "留下统计的文章")
	stats := &StatisticsService{db: db, logger: testLogger(), now: time.Now}
	require.NoError(t, stats.RecordRead(article.Slug, target.Username))

	// 他人对目标用户评论的点赞
	otherArticle := seedArticle(t, db, other, "别人的文章")
	comment := &model.Comment{Body: "目标用户的评论", ArticleID: otherArticle.ID, UserID: target.ID}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(&model.CommentReaction{UserID: other.ID, CommentID: comment.ID}).Error)

	// 他人在目标用户文章下的评论及其点赞
	reply := &model.Comment{Body: "他人的评论", ArticleID: article.ID, UserID: other.ID}
	require.NoError(t, db.Create(reply).Error)
	require.NoError(t, db.Create(&model.CommentReaction{UserID: other.ID, CommentID: reply.ID}).Error)

	require.NoError(t, svc.DeleteUser(target.ID))

	var statCount, reactionCount int64
	db.Model(&model.Statistics{}).Where("author = ?", target.Username).Count(&statCount)
	assert.Equal(t, int64(0), statCount)
	db.Model(&model.CommentReaction{}).
		Where("comment_id IN ?", []uint{comment.ID, reply.ID}).Count(&reactionCount)
	assert.Equal(t, int64(0), reactionCount)

	// 无关数据不受影响
	var otherArticleCount int64
	db.Model(&model.Article{}).Where("id = ?", otherArticle.ID).Count(&otherArticleCount)
	assert.Equal(t, int64(1), otherArticleCount)
}
