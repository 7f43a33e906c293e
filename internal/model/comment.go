package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CommentSnapshot 评论历史快照
type CommentSnapshot struct {
	Body string    `json:"body"`
	Time time.Time `json:"time"`
}

// CommentHistory 评论编辑历史，按时间从旧到新追加
// 以JSON文本形式存入数据库
type CommentHistory []CommentSnapshot

// Value 实现 driver.Valuer 接口
func (h CommentHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (h *CommentHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("无法将 %v 转换为 CommentHistory", value)
	}
}

// Comment 评论模型
type Comment struct {
	Base
	Body      string         `gorm:"type:text;not null" json:"body"`
	ArticleID uint           `gorm:"type:int(11);not null;index" json:"article_id"`
	UserID    uint           `gorm:"type:int(11);not null;index" json:"user_id"`
	Edited    int            `gorm:"type:tinyint(1);not null;default:0" json:"edited"` // 0=否 1=是
	History   CommentHistory `gorm:"type:text" json:"history,omitempty"`

	// 关联
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// CommentReaction 评论点赞关联模型
// 一个(用户, 评论)最多一条记录，记录存在即为点赞
type CommentReaction struct {
	Base
	UserID    uint `gorm:"type:int(11);not null;index:idx_user_comment,priority:1" json:"user_id"`
	CommentID uint `gorm:"type:int(11);not null;index:idx_user_comment,priority:2" json:"comment_id"`
	IsLiked   int  `gorm:"type:tinyint(1);not null;default:1" json:"is_liked"`

	// 关联
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

// TableName 指定表名
func (CommentReaction) TableName() string {
	return "comment_reactions"
}
