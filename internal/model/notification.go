package model

// 通知类型
const (
	NotificationTypeFollow     = "new_follower"
	NotificationTypeNewArticle = "new_article"
	NotificationTypeNewComment = "new_comment"
)

// Notification 通知模型
type Notification struct {
	Base
	UserID    uint   `gorm:"type:int(11);not null;index" json:"user_id"`
	SenderID  *uint  `gorm:"type:int(11);index" json:"sender_id"`
	ArticleID *uint  `gorm:"type:int(11);index" json:"article_id"`
	Type      string `gorm:"type:varchar(20);not null;index" json:"type"`
	Message   string `gorm:"type:text;not null" json:"message"`
	IsRead    int    `gorm:"type:tinyint(1);not null;default:0;index" json:"is_read"` // 0=未读 1=已读

	// 关联
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Sender  *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Article *Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
