package domain

// Group represents a topic that posts can be tagged to
type Group struct {
	BaseModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(60);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	Posts []Post `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"posts,omitempty"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}
