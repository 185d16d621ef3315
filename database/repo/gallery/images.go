package gallery

import (
	"errors"
	"fmt"

	"github.com/nugw/ai-gallery/database/dberr"
	"github.com/nugw/ai-gallery/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortedImages 返回相册内图片的一页（每页 3 张），按创建时间倒序。
// 同一秒内创建的图片以 id 倒序打破平局，保持分页稳定。
func (s *Store) SortedImages(albumID uint, page int) ([]*models.Image, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * ImagesPerPage

	var images []*models.Image
	err := s.db.DB().
		Where("album_id = ? AND username = ?", albumID, s.username).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(ImagesPerPage).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// CountImagePages 相册内图片总页数，空相册（或不存在的相册）为 1 页。
// 页数为 1 不代表相册存在，调用方需另行校验。
func (s *Store) CountImagePages(albumID uint) (int, error) {
	var total int64
	err := s.db.DB().Model(&models.Image{}).
		Where("album_id = ? AND username = ?", albumID, s.username).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return pageCount(total, ImagesPerPage), nil
}

// LoadImage 获取图片，不可见时返回 (nil, nil)
func (s *Store) LoadImage(albumID, imageID uint) (*models.Image, error) {
	var image models.Image
	err := s.db.DB().
		First(&image, "id = ? AND album_id = ? AND username = ?", imageID, albumID, s.username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// AddImageToAlbum 把一张尚未持久化的图片存入相册。相册行在事务内加锁，
// 避免保存与删除相册并发交错。相册不可见时返回 false。
func (s *Store) AddImageToAlbum(albumID uint, image *models.Image) (bool, error) {
	saved := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&album, "id = ? AND username = ?", albumID, s.username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		record := &models.Image{
			Prompt:   image.Prompt,
			URL:      image.URL,
			AlbumID:  album.ID,
			Username: s.username,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to save image to album %d: %w", albumID, err)
		}

		image.ID = record.ID
		image.CreatedAt = record.CreatedAt
		saved = true
		return nil
	})
	return saved, err
}

// SetImageCaption 修改图片标题（prompt），图片不可见时返回 false
func (s *Store) SetImageCaption(albumID, imageID uint, caption string) (bool, error) {
	result := s.db.DB().Model(&models.Image{}).
		Where("id = ? AND album_id = ? AND username = ?", imageID, albumID, s.username).
		Update("prompt", caption)
	if result.Error != nil {
		if dberr.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to rename image: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteImage 删除图片，返回是否确有行被删除
func (s *Store) DeleteImage(albumID, imageID uint) (bool, error) {
	result := s.db.DB().Unscoped().
		Where("id = ? AND album_id = ? AND username = ?", imageID, albumID, s.username).
		Delete(&models.Image{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete image: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
