package service

import (
	"strings"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/queue"
	"github.com/jagoron-news/internal/repository"
)

// SpecialService home page special blocks
type SpecialService struct {
	repo        repository.SpecialRepository
	articleRepo repository.ArticleRepository
	queueClient *queue.Client
}

// NewSpecialService creates the special block service
func NewSpecialService(repo repository.SpecialRepository, articleRepo repository.ArticleRepository, queueClient *queue.Client) *SpecialService {
	return &SpecialService{repo: repo, articleRepo: articleRepo, queueClient: queueClient}
}

// SpecialTitleInput special block heading input
type SpecialTitleInput struct {
	Title    string
	IsActive *bool
}

// SpecialArticleInput pinned article input
type SpecialArticleInput struct {
	SpecialTitleID uint
	ArticleID      uint
	MainNews       bool
}

// ListTitles lists every special block heading
func (s *SpecialService) ListTitles() ([]models.SpecialTitle, error) {
	return s.repo.ListTitles(false)
}

// SaveTitle creates (id 0) or updates a heading
func (s *SpecialService) SaveTitle(id uint, input SpecialTitleInput) (*models.SpecialTitle, error) {
	title := &models.SpecialTitle{IsActive: true}
	if id != 0 {
		existing, err := s.repo.GetTitleByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		title = existing
	}
	name := strings.TrimSpace(input.Title)
	if name == "" {
		return nil, ErrTitleRequired
	}
	title.Title = name
	if input.IsActive != nil {
		title.IsActive = *input.IsActive
	}
	if err := s.repo.SaveTitle(title); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "special_title_saved", 0)
	return title, nil
}

// DeleteTitle removes a heading and its pinned rows
func (s *SpecialService) DeleteTitle(id uint) error {
	title, err := s.repo.GetTitleByID(id)
	if err != nil {
		return err
	}
	if title == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteTitle(id); err != nil {
		return err
	}
	invalidateContent(s.queueClient, "special_title_deleted", 0)
	return nil
}

// ListArticles lists the pinned rows of a heading
func (s *SpecialService) ListArticles(titleID uint) ([]models.SpecialArticle, error) {
	return s.repo.ListAllArticles(titleID)
}

// SaveArticle pins (id 0) or updates a pinned article
func (s *SpecialService) SaveArticle(id uint, input SpecialArticleInput, adminID uint) (*models.SpecialArticle, error) {
	row := &models.SpecialArticle{}
	if id != 0 {
		existing, err := s.repo.GetArticleByID(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		row = existing
	}
	title, err := s.repo.GetTitleByID(input.SpecialTitleID)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, ErrNotFound
	}
	if input.ArticleID == 0 {
		return nil, ErrSpecialArticleRequired
	}
	article, err := s.articleRepo.GetByID(input.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrSpecialArticleRequired
	}

	row.SpecialTitleID = title.ID
	row.ArticleID = article.ID
	row.MainNews = input.MainNews
	if adminID != 0 {
		if row.ID == 0 {
			row.CreatedByID = &adminID
		}
		row.UpdatedByID = &adminID
	}
	if err := s.repo.SaveArticle(row); err != nil {
		return nil, err
	}
	invalidateContent(s.queueClient, "special_article_saved", article.ID)
	return row, nil
}

// DeleteArticle unpins an article
func (s *SpecialService) DeleteArticle(id uint) error {
	row, err := s.repo.GetArticleByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteArticle(id); err != nil {
		return err
	}
	invalidateContent(s.queueClient, "special_article_deleted", row.ArticleID)
	return nil
}
