package models

import "gorm.io/gorm"

// Album 相册 - 每个用户内名称唯一
type Album struct {
	gorm.Model
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_albums_name_username"`
	Username string `gorm:"type:varchar(100);not null;uniqueIndex:idx_albums_name_username;index"`

	Images []*Image `gorm:"foreignKey:AlbumID"`
}
