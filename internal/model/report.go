package model

// 举报类型
const (
	ReportTypeSpam           = "spam"
	ReportTypeHarassment     = "harassment"
	ReportTypeRulesViolation = "rules violation"
	ReportTypeTerrorism      = "terrorism"
	ReportTypeOther          = "other"
)

// Report 举报模型
type Report struct {
	Base
	ReportType string `gorm:"type:varchar(30);not null" json:"report_type"`
	UserID     uint   `gorm:"type:int(11);not null;index" json:"user_id"`
	ArticleID  uint   `gorm:"type:int(11);not null;index" json:"article_id"`
	Context    string `gorm:"type:text" json:"context"` // 类型为other时必填

	// 关联
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}
