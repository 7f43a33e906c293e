package model

// HighlightedText 划线评论模型
// 评论锚定在文章正文中的一段原文上
type HighlightedText struct {
	Base
	Text      string `gorm:"type:text;not null" json:"text"`
	Comment   string `gorm:"type:text;not null" json:"comment"`
	ArticleID uint   `gorm:"type:int(11);not null;index" json:"article_id"`
	UserID    uint   `gorm:"type:int(11);not null;index" json:"user_id"`

	// 关联
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (HighlightedText) TableName() string {
	return "highlighted_texts"
}
