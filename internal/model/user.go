package model

import (
	"time"
)

// 用户角色
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// User 用户模型
type User struct {
	Base
	Username             string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Email                string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password             string    `gorm:"type:varchar(100);not null" json:"-"`
	Role                 string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // 角色: user admin superAdmin
	Bio                  string    `gorm:"type:text" json:"bio"`
	Image                string    `gorm:"type:varchar(255)" json:"image"`
	EmailNotifications   int       `gorm:"type:tinyint(1);not null;default:1" json:"email_notifications"` // 0=关闭 1=开启
	AppNotifications     int       `gorm:"type:tinyint(1);not null;default:1" json:"app_notifications"`   // 0=关闭 1=开启
	IsVerified           int       `gorm:"type:tinyint(1);not null;default:0" json:"is_verified"`         // 0=未验证 1=已验证
	VerificationToken    string    `gorm:"type:varchar(100)" json:"-"`
	ResetPasswordToken   string    `gorm:"type:varchar(100)" json:"-"`
	ResetPasswordExpires time.Time `json:"-"`
	GoogleID             string    `gorm:"type:varchar(100);index" json:"-"`
	FacebookID           string    `gorm:"type:varchar(100);index" json:"-"`
	TwitterID            string    `gorm:"type:varchar(100);index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdminRole 判断是否为管理员角色
func (u *User) IsAdminRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
