package services

import (
	"errors"
	"strings"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/repository"
	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(userID uint, input dto.CreateCommentRequest) (*domain.Comment, error)
	GetAllComments() ([]domain.Comment, error)
	GetCommentByID(id uint) (*domain.Comment, error)
	UpdateComment(id uint, input dto.UpdateCommentRequest) (*domain.Comment, error)
	DeleteComment(id uint) error
}

type commentService struct {
	repo repository.CommentRepository
}

func NewCommentService(repo repository.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) CreateComment(userID uint, input dto.CreateCommentRequest) (*domain.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if userID == 0 || input.PostID == 0 || content == "" {
		return nil, apperrors.ErrInvalidInput
	}

	comment := &domain.Comment{
		UserID:  userID,
		PostID:  input.PostID,
		Content: content,
	}

	created, err := s.repo.CreateComment(comment)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return created, nil
}

func (s *commentService) GetAllComments() ([]domain.Comment, error) {
	comments, err := s.repo.FindAllComments()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return comments, nil
}

func (s *commentService) GetCommentByID(id uint) (*domain.Comment, error) {
	comment, err := s.repo.FindCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(id uint, input dto.UpdateCommentRequest) (*domain.Comment, error) {
	comment, err := s.GetCommentByID(id)
	if err != nil {
		return nil, err
	}

	comment.Content = strings.TrimSpace(input.Content)
	if err := s.repo.SaveComment(comment); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(id uint) error {
	comment, err := s.GetCommentByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.RemoveComment(comment); err != nil {
		return apperrors.Wrap(apperrors.ErrServer, err)
	}
	return nil
}
