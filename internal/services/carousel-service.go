package services

import (
	"errors"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/campusboard/board-service/internal/repository"
	"gorm.io/gorm"
)

// CarouselService toggles the featured flag on board posts.
type CarouselService interface {
	FeaturePost(input dto.CarouselRequest) (*domain.Post, error)
	UnfeaturePost(input dto.CarouselRequest) (*domain.Post, error)
	GetFeaturedPosts() ([]domain.Post, error)
}

type carouselService struct {
	repo repository.PostRepository
}

func NewCarouselService(repo repository.PostRepository) CarouselService {
	return &carouselService{repo: repo}
}

func (s *carouselService) FeaturePost(input dto.CarouselRequest) (*domain.Post, error) {
	return s.setCarousel(input, true)
}

func (s *carouselService) UnfeaturePost(input dto.CarouselRequest) (*domain.Post, error) {
	return s.setCarousel(input, false)
}

func (s *carouselService) setCarousel(input dto.CarouselRequest, featured bool) (*domain.Post, error) {
	post, err := s.repo.FindPost(input.PostID, input.BoardID, input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}

	post.IsCarousel = featured
	if err := s.repo.SavePost(post); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return post, nil
}

func (s *carouselService) GetFeaturedPosts() ([]domain.Post, error) {
	posts, err := s.repo.FindFeatured()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, err)
	}
	return posts, nil
}
