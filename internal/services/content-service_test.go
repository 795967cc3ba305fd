package services

import (
	"testing"

	"github.com/campusboard/board-service/internal/apperrors"
	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memPostRepo struct {
	posts map[uint]*domain.Post
}

func newMemPostRepo(posts ...*domain.Post) *memPostRepo {
	r := &memPostRepo{posts: map[uint]*domain.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *memPostRepo) FindPost(postID, boardID uint, categoryID *uint) (*domain.Post, error) {
	p, ok := r.posts[postID]
	if !ok || p.BoardID != boardID {
		return nil, gorm.ErrRecordNotFound
	}
	if categoryID != nil && p.CategoryID != *categoryID {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (r *memPostRepo) SavePost(post *domain.Post) error {
	c := *post
	r.posts[post.ID] = &c
	return nil
}

func (r *memPostRepo) FindFeatured() ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if p.IsCarousel {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestCarouselFeatureUnfeature(t *testing.T) {
	repo := newMemPostRepo(&domain.Post{ID: 7, BoardID: 2, CategoryID: 3, Title: "hello"})
	svc := NewCarouselService(repo)

	post, err := svc.FeaturePost(dto.CarouselRequest{BoardID: 2, PostID: 7})
	require.NoError(t, err)
	assert.True(t, post.IsCarousel)

	featured, err := svc.GetFeaturedPosts()
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	post, err = svc.UnfeaturePost(dto.CarouselRequest{BoardID: 2, PostID: 7})
	require.NoError(t, err)
	assert.False(t, post.IsCarousel)

	featured, err = svc.GetFeaturedPosts()
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestCarouselCategoryNarrowsMatch(t *testing.T) {
	repo := newMemPostRepo(&domain.Post{ID: 7, BoardID: 2, CategoryID: 3})
	svc := NewCarouselService(repo)

	wrongCat := uint(9)
	_, err := svc.FeaturePost(dto.CarouselRequest{BoardID: 2, PostID: 7, CategoryID: &wrongCat})
	assert.True(t, apperrors.Is(err, apperrors.ErrPostNotFound))

	rightCat := uint(3)
	_, err = svc.FeaturePost(dto.CarouselRequest{BoardID: 2, PostID: 7, CategoryID: &rightCat})
	assert.NoError(t, err)
}

func TestCarouselMissingPost(t *testing.T) {
	svc := NewCarouselService(newMemPostRepo())

	_, err := svc.FeaturePost(dto.CarouselRequest{BoardID: 1, PostID: 99})
	assert.True(t, apperrors.Is(err, apperrors.ErrPostNotFound))
}

type memCommentRepo struct {
	nextID   uint
	comments map[uint]*domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{nextID: 1, comments: map[uint]*domain.Comment{}}
}

func (r *memCommentRepo) CreateComment(c *domain.Comment) (*domain.Comment, error) {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.comments[c.ID] = &cp
	return c, nil
}

func (r *memCommentRepo) FindCommentByID(id uint) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCommentRepo) FindAllComments() ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCommentRepo) SaveComment(c *domain.Comment) error {
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *memCommentRepo) RemoveComment(c *domain.Comment) error {
	delete(r.comments, c.ID)
	return nil
}

func TestCommentCRUD(t *testing.T) {
	svc := NewCommentService(newMemCommentRepo())

	created, err := svc.CreateComment(5, dto.CreateCommentRequest{PostID: 10, Content: "first!"})
	require.NoError(t, err)
	assert.Equal(t, uint(5), created.UserID)

	got, err := svc.GetCommentByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", got.Content)

	updated, err := svc.UpdateComment(created.ID, dto.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	all, err := svc.GetAllComments()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteComment(created.ID))

	_, err = svc.GetCommentByID(created.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCommentNotFound))
}

func TestCommentInvalidInput(t *testing.T) {
	svc := NewCommentService(newMemCommentRepo())

	_, err := svc.CreateComment(5, dto.CreateCommentRequest{PostID: 10, Content: "   "})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = svc.CreateComment(0, dto.CreateCommentRequest{PostID: 10, Content: "hi"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestCommentNotFoundOnMutations(t *testing.T) {
	svc := NewCommentService(newMemCommentRepo())

	_, err := svc.UpdateComment(42, dto.UpdateCommentRequest{Content: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrCommentNotFound))

	err = svc.DeleteComment(42)
	assert.True(t, apperrors.Is(err, apperrors.ErrCommentNotFound))
}
