package model

// Article 文章模型
type Article struct {
	Base
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Body        string `gorm:"type:longtext;not null" json:"body"`
	ImgURL      string `gorm:"type:varchar(255)" json:"img_url"`
	UserID      uint   `gorm:"type:int(11);not null;index" json:"user_id"`

	// 关联
	Author User  `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:article_tags;" json:"tags,omitempty"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
