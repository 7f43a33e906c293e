package model

// Rating 评分模型
// 每次评分单独一条记录，平均分按全部记录计算
type Rating struct {
	Base
	ArticleSlug string `gorm:"type:varchar(255);not null;index" json:"article_slug"`
	UserID      uint   `gorm:"type:int(11);not null;index" json:"user_id"`
	Rating      string `gorm:"type:varchar(2);not null" json:"rating"` // 数字字符串 1-5

	// 关联
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Rating) TableName() string {
	return "ratings"
}
