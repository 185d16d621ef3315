package gallery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nugw/ai-gallery/database/dberr"
	"github.com/nugw/ai-gallery/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// imageCountExpr 按相册统计图片数量的关联子查询，用于声明式排序。
// 统计结果与加载后的 len(album.Images) 一致。
const imageCountExpr = `(SELECT COUNT(id) FROM images
	WHERE images.album_id = albums.id
	  AND images.username = albums.username
	  AND images.deleted_at IS NULL)`

// CompareAlbums is the total order used for album listings: descending image
// count first, then case-insensitive ascending name.
func CompareAlbums(a, b *models.Album) int {
	if len(a.Images) != len(b.Images) {
		if len(a.Images) > len(b.Images) {
			return -1
		}
		return 1
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// SortedAlbums 返回用户相册的一页（每页 5 个），附带各相册的全部图片。
// 排序在 SQL 中声明，取回后再用 CompareAlbums 重新断言一次，保证总顺序
// 不依赖存储引擎的 ORDER BY 实现。
func (s *Store) SortedAlbums(page int) ([]*models.Album, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * AlbumsPerPage

	var albums []*models.Album
	err := s.db.DB().Model(&models.Album{}).
		Where("username = ?", s.username).
		Order(imageCountExpr + " DESC").
		Order("LOWER(name) ASC").
		Offset(offset).Limit(AlbumsPerPage).
		Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	if len(albums) == 0 {
		return []*models.Album{}, nil
	}

	albumIDs := make([]uint, len(albums))
	for i, album := range albums {
		albumIDs[i] = album.ID
	}

	var images []*models.Image
	err = s.db.DB().
		Where("album_id IN ? AND username = ?", albumIDs, s.username).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load album images: %w", err)
	}

	byAlbum := make(map[uint][]*models.Image)
	for _, image := range images {
		byAlbum[image.AlbumID] = append(byAlbum[image.AlbumID], image)
	}
	for _, album := range albums {
		album.Images = byAlbum[album.ID]
		if album.Images == nil {
			album.Images = []*models.Image{}
		}
	}

	sort.SliceStable(albums, func(i, j int) bool {
		return CompareAlbums(albums[i], albums[j]) < 0
	})

	return albums, nil
}

// CountAlbumPages 用户相册总页数，空集合为 1 页
func (s *Store) CountAlbumPages() (int, error) {
	var total int64
	err := s.db.DB().Model(&models.Album{}).
		Where("username = ?", s.username).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return pageCount(total, AlbumsPerPage), nil
}

// LoadAlbum 获取相册及其图片，不可见时返回 (nil, nil)
func (s *Store) LoadAlbum(albumID uint) (*models.Album, error) {
	var album models.Album
	err := s.db.DB().Preload("Images").
		First(&album, "id = ? AND username = ?", albumID, s.username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if album.Images == nil {
		album.Images = []*models.Image{}
	}
	return &album, nil
}

// CreateAlbum 创建相册，名称在用户内重复时返回 false
func (s *Store) CreateAlbum(name string) (bool, error) {
	if s.username == "" {
		return false, nil
	}

	album := &models.Album{
		Name:     name,
		Username: s.username,
	}
	if err := s.db.DB().Create(album).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create album: %w", err)
	}
	return true, nil
}

// SetAlbumName 重命名相册，名称冲突或相册不可见时返回 false
func (s *Store) SetAlbumName(albumID uint, name string) (bool, error) {
	result := s.db.DB().Model(&models.Album{}).
		Where("id = ? AND username = ?", albumID, s.username).
		Update("name", name)
	if result.Error != nil {
		if dberr.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to rename album: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAlbum 删除相册及其图片，整个操作在同一事务内完成
func (s *Store) DeleteAlbum(albumID uint) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&album, "id = ? AND username = ?", albumID, s.username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Unscoped().
			Where("album_id = ? AND username = ?", albumID, s.username).
			Delete(&models.Image{}).Error; err != nil {
			return fmt.Errorf("failed to delete images of album %d: %w", albumID, err)
		}

		if err := tx.Unscoped().Delete(&album).Error; err != nil {
			return fmt.Errorf("failed to delete album %d: %w", albumID, err)
		}

		deleted = true
		return nil
	})
	return deleted, err
}

// ExistsAlbumName 检查用户内相册名称是否已存在
func (s *Store) ExistsAlbumName(name string) (bool, error) {
	var count int64
	err := s.db.DB().Model(&models.Album{}).
		Where("name = ? AND username = ?", name, s.username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
