package service

import (
	"strings"
	"unicode/utf8"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// ReviewService anonymous reader comments
type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	articleRepo    repository.ArticleRepository
	captchaService *CaptchaService
	clock          Clock
}

// NewReviewService creates the review service
func NewReviewService(reviewRepo repository.ReviewRepository, articleRepo repository.ArticleRepository, captchaService *CaptchaService, clock Clock) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		articleRepo:    articleRepo,
		captchaService: captchaService,
		clock:          clock,
	}
}

// SubmitReviewInput public review input
type SubmitReviewInput struct {
	ArticleID uint
	Name      string
	Comment   string
	ClientIP  string
	Captcha   CaptchaVerifyPayload
}

// Submit stores a review after the captcha check
func (s *ReviewService) Submit(input SubmitReviewInput) (*models.Review, error) {
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, ErrReviewCommentRequired
	}
	if utf8.RuneCountInString(comment) > constants.ReviewCommentMaxRunes {
		return nil, ErrReviewCommentTooLong
	}
	if s.captchaService != nil {
		if err := s.captchaService.Verify(constants.CaptchaSceneReview, input.Captcha); err != nil {
			return nil, err
		}
	}
	article, err := s.articleRepo.GetByID(input.ArticleID)
	if err != nil {
		return nil, err
	}
	if !IsVisible(article, s.clock.now(), false) {
		return nil, ErrContentNotFound
	}

	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) > 100 {
		name = string([]rune(name)[:100])
	}
	review := &models.Review{
		ArticleID: article.ID,
		Name:      name,
		Comment:   comment,
		ClientIP:  strings.TrimSpace(input.ClientIP),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForArticle lists reviews of a visible article, newest first
func (s *ReviewService) ListForArticle(articleID uint, page, pageSize int) ([]models.Review, int64, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, 0, err
	}
	if !IsVisible(article, s.clock.now(), false) {
		return nil, 0, ErrContentNotFound
	}
	return s.reviewRepo.List(repository.ReviewListFilter{Page: page, PageSize: pageSize, ArticleID: articleID})
}

// ListAdmin lists reviews for moderation
func (s *ReviewService) ListAdmin(articleID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{Page: page, PageSize: pageSize, ArticleID: articleID})
}

// Delete removes a review
func (s *ReviewService) Delete(id uint) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	return s.reviewRepo.Delete(id)
}
