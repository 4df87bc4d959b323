package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
)

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new PostgreSQL blog repository
func NewBlogRepository(db *gorm.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *blogRepository) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	err := r.db.WithContext(ctx).
		Select("id", "slug", "title", "summary", "author_id", "published", "published_at", "created_at", "updated_at").
		Where("published = ?", true).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// SaveBySlug upserts on slug and reloads the row so the caller sees the stored ID
func (r *blogRepository) SaveBySlug(ctx context.Context, post *domain.BlogPost) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "summary", "body", "author_id", "published", "published_at", "updated_at"}),
		}).
		Create(post)
	if result.Error != nil {
		return translate(result.Error)
	}

	stored, err := r.FindBySlug(ctx, post.Slug)
	if err != nil {
		return err
	}
	*post = *stored
	return nil
}
