package repository

import (
	"context"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// PostRepository owns the post aggregate: the post itself plus its embedded
// like set and comment list. Ownership checks for deletes live here so the
// handlers only translate outcomes to HTTP statuses.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Delete(ctx context.Context, id, requesterID uint) error
	Like(ctx context.Context, postID, userID uint) ([]models.Like, error)
	Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error)
	AddComment(ctx context.Context, comment *models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, requesterID uint) ([]models.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withEmbedded preloads likes and comments; comments newest-first.
func withEmbedded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetByID(ctx, post.ID)
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := withEmbedded(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := withEmbedded(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("No post found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id, requesterID uint) error {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return models.NewUnauthorizedError("User not authorized")
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Like inserts into the like set. Uniqueness rides on the (post_id, user_id)
// index, so two concurrent likes by the same user cannot both land; the
// loser surfaces as a conflict.
func (r *postRepository) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, models.NewConflictError("Post already liked")
		}
		return nil, models.NewInternalError(err)
	}
	return r.likes(ctx, postID)
}

// Unlike removes the user's entry from the like set. A single conditional
// DELETE keeps the operation atomic; zero affected rows means the post was
// never liked by this user.
func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewConflictError("Post has not yet been liked")
	}
	return r.likes(ctx, postID)
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) ([]models.Comment, error) {
	if _, err := r.GetByID(ctx, comment.PostID); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.comments(ctx, comment.PostID)
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID, requesterID uint) ([]models.Comment, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("No comment found")
		}
		return nil, models.NewInternalError(err)
	}
	if comment.UserID != requesterID {
		return nil, models.NewUnauthorizedError("User not authorized")
	}

	if err := r.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.comments(ctx, postID)
}

func (r *postRepository) likes(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *postRepository) comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
