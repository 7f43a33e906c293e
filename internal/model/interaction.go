package model

// Favorite 收藏模型
type Favorite struct {
	Base
	UserID    uint `gorm:"type:int(11);not null;index:idx_fav_user_article,priority:1" json:"user_id"`
	ArticleID uint `gorm:"type:int(11);not null;index:idx_fav_user_article,priority:2" json:"article_id"`

	// 关联
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}

// Bookmark 书签模型
type Bookmark struct {
	Base
	UserID    uint `gorm:"type:int(11);not null;index:idx_bm_user_article,priority:1" json:"user_id"`
	ArticleID uint `gorm:"type:int(11);not null;index:idx_bm_user_article,priority:2" json:"article_id"`

	// 关联
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// TableName 指定表名
func (Bookmark) TableName() string {
	return "bookmarks"
}

// Follow 用户关注模型
type Follow struct {
	Base
	FollowerID uint `gorm:"type:int(11);not null;index" json:"follower_id"`
	FollowedID uint `gorm:"type:int(11);not null;index" json:"followed_id"`

	// 关联
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName 指定表名
func (Follow) TableName() string {
	return "follows"
}
