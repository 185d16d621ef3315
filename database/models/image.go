package models

import "gorm.io/gorm"

// Image 生成的图片 - prompt 同时作为标题
type Image struct {
	gorm.Model
	Prompt   string `gorm:"type:varchar(100);not null"`
	URL      string `gorm:"type:varchar(2048);not null"`
	AlbumID  uint   `gorm:"not null;index:idx_images_album_username,priority:1"`
	Username string `gorm:"type:varchar(100);not null;index:idx_images_album_username,priority:2"`
}
