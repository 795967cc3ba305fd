package repository

import (
	"errors"

	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	CreateComment(comment *domain.Comment) (*domain.Comment, error)
	FindCommentByID(id uint) (*domain.Comment, error)
	FindAllComments() ([]domain.Comment, error)
	SaveComment(comment *domain.Comment) error
	RemoveComment(comment *domain.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, errors.New("nil comment")
	}

	if err := r.db.Create(comment).Error; err != nil {
		logger.S().Errorw("create comment failed", "post_id", comment.PostID, "error", err)
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) FindCommentByID(id uint) (*domain.Comment, error) {
	comment := &domain.Comment{}
	if err := r.db.First(comment, id).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) FindAllComments() ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := r.db.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) SaveComment(comment *domain.Comment) error {
	if comment == nil {
		return errors.New("nil comment")
	}

	if err := r.db.Save(comment).Error; err != nil {
		logger.S().Errorw("save comment failed", "comment_id", comment.ID, "error", err)
		return err
	}
	return nil
}

func (r *commentRepository) RemoveComment(comment *domain.Comment) error {
	if comment == nil {
		return errors.New("nil comment")
	}

	if err := r.db.Delete(comment).Error; err != nil {
		logger.S().Errorw("remove comment failed", "comment_id", comment.ID, "error", err)
		return err
	}
	return nil
}
