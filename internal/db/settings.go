package db

// SettingsID is the primary key of the only Settings row.
const SettingsID = 1

// Settings holds the social links shown in the site footer.
type Settings struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	InstagramURL string `gorm:"column:instagram_url;not null;default:''" json:"instagramUrl"`
	LinkedinURL  string `gorm:"column:linkedin_url;not null;default:''" json:"linkedinUrl"`
	YoutubeURL   string `gorm:"column:youtube_url;not null;default:''" json:"youtubeUrl"`
}

// TableName keeps the singleton table name stable.
func (Settings) TableName() string {
	return "settings"
}
