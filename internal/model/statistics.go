package model

// Statistics 阅读统计模型
// 一条记录代表某篇文章在某个UTC自然日内的阅读次数
type Statistics struct {
	Base
	Author      string `gorm:"type:varchar(50);not null;index" json:"author"`
	ArticleSlug string `gorm:"type:varchar(255);not null;index" json:"article_slug"`
	ReadCount   int    `gorm:"type:int(11);not null;default:0" json:"read_count"`
}

// TableName 指定表名
func (Statistics) TableName() string {
	return "statistics"
}
