package service

import (
	"strings"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const (
	seoOGTypeArticle   = "article"
	seoOGTypeWebsite   = "website"
	seoOGLocale        = "bn_BD"
	seoTwitterCardWide = "summary_large_image"
)

// SeoMeta resolved SEO data of a page
type SeoMeta struct {
	MetaTitle          string `json:"meta_title"`
	MetaDescription    string `json:"meta_description"`
	MetaAuthor         string `json:"meta_author"`
	CanonicalURL       string `json:"canonical_url"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	OGImage            string `json:"og_image"`
	OGType             string `json:"og_type"`
	OGSiteName         string `json:"og_site_name"`
	OGLocale           string `json:"og_locale"`
	TwitterCard        string `json:"twitter_card"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`
}

// SeoService per-page SEO: an optional override merged over generated defaults
type SeoService struct {
	repo    repository.SeoRepository
	siteCfg config.SiteConfig
}

// NewSeoService creates the SEO service
func NewSeoService(repo repository.SeoRepository, siteCfg config.SiteConfig) *SeoService {
	return &SeoService{repo: repo, siteCfg: siteCfg}
}

// ForArticle resolves SEO data of an article
func (s *SeoService) ForArticle(article *models.Article) (*SeoMeta, error) {
	if article == nil {
		return nil, ErrContentNotFound
	}
	meta := s.articleDefaults(article)
	override, err := s.repo.GetArticleSeo(article.ID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		mergeSeoOverride(meta, &override.SeoFields)
	}
	return meta, nil
}

// ForSection resolves SEO data of a section listing
func (s *SeoService) ForSection(section *models.Section) (*SeoMeta, error) {
	if section == nil {
		return nil, ErrContentNotFound
	}
	meta := s.listingDefaults(section.Title, SectionCanonicalPath(section))
	override, err := s.repo.GetSectionSeo(section.ID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		mergeSeoOverride(meta, &override.SeoFields)
	}
	return meta, nil
}

// ForSubsection resolves SEO data of a subsection listing
func (s *SeoService) ForSubsection(section *models.Section, subsection *models.Subsection) (*SeoMeta, error) {
	if subsection == nil {
		return nil, ErrContentNotFound
	}
	if section == nil {
		section = subsection.Section
	}
	meta := s.listingDefaults(subsection.Title, SubsectionCanonicalPath(section, subsection))
	override, err := s.repo.GetSubsectionSeo(subsection.ID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		mergeSeoOverride(meta, &override.SeoFields)
	}
	return meta, nil
}

// ForResolution resolves SEO data of whatever the resolution points at
func (s *SeoService) ForResolution(res *Resolution) (*SeoMeta, error) {
	if res == nil {
		return nil, ErrContentNotFound
	}
	switch res.Kind {
	case ResolutionArticle:
		return s.ForArticle(res.Article)
	case ResolutionSubsection:
		return s.ForSubsection(res.Section, res.Subsection)
	case ResolutionSection:
		return s.ForSection(res.Section)
	default:
		return s.listingDefaults(s.siteCfg.Name, res.CanonicalPath), nil
	}
}

// GetArticleOverride returns the stored override, nil when absent
func (s *SeoService) GetArticleOverride(articleID uint) (*models.ArticleSeo, error) {
	return s.repo.GetArticleSeo(articleID)
}

// GetSectionOverride returns the stored override, nil when absent
func (s *SeoService) GetSectionOverride(sectionID uint) (*models.SectionSeo, error) {
	return s.repo.GetSectionSeo(sectionID)
}

// GetSubsectionOverride returns the stored override, nil when absent
func (s *SeoService) GetSubsectionOverride(subsectionID uint) (*models.SubsectionSeo, error) {
	return s.repo.GetSubsectionSeo(subsectionID)
}

// SaveArticleOverride stores the article override
func (s *SeoService) SaveArticleOverride(articleID uint, fields models.SeoFields) (*models.ArticleSeo, error) {
	row := &models.ArticleSeo{ArticleID: articleID, SeoFields: trimSeoFields(fields)}
	if err := s.repo.UpsertArticleSeo(row); err != nil {
		return nil, err
	}
	return row, nil
}

// SaveSectionOverride stores the section override
func (s *SeoService) SaveSectionOverride(sectionID uint, fields models.SeoFields) (*models.SectionSeo, error) {
	row := &models.SectionSeo{SectionID: sectionID, SeoFields: trimSeoFields(fields)}
	if err := s.repo.UpsertSectionSeo(row); err != nil {
		return nil, err
	}
	return row, nil
}

// SaveSubsectionOverride stores the subsection override
func (s *SeoService) SaveSubsectionOverride(subsectionID uint, fields models.SeoFields) (*models.SubsectionSeo, error) {
	row := &models.SubsectionSeo{SubsectionID: subsectionID, SeoFields: trimSeoFields(fields)}
	if err := s.repo.UpsertSubsectionSeo(row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SeoService) articleDefaults(article *models.Article) *SeoMeta {
	description := strings.TrimSpace(article.SubContent)
	image := article.HeadingImage
	if image == "" {
		image = article.MainImage
	}
	image = s.absoluteURL(image)
	canonical := ""
	if path, ok := ArticleCanonicalPath(article); ok {
		canonical = s.absoluteURL(path)
	}
	return &SeoMeta{
		MetaTitle:          article.Title,
		MetaDescription:    description,
		MetaAuthor:         article.Reporter,
		CanonicalURL:       canonical,
		OGTitle:            article.Title,
		OGDescription:      description,
		OGImage:            image,
		OGType:             seoOGTypeArticle,
		OGSiteName:         s.siteCfg.Name,
		OGLocale:           seoOGLocale,
		TwitterCard:        seoTwitterCardWide,
		TwitterTitle:       article.Title,
		TwitterDescription: description,
		TwitterImage:       image,
	}
}

func (s *SeoService) listingDefaults(title, path string) *SeoMeta {
	description := ""
	if title != "" {
		description = title + " - " + s.siteCfg.Name
	}
	return &SeoMeta{
		MetaTitle:          title,
		MetaDescription:    description,
		CanonicalURL:       s.absoluteURL(path),
		OGTitle:            title,
		OGDescription:      description,
		OGType:             seoOGTypeWebsite,
		OGSiteName:         s.siteCfg.Name,
		OGLocale:           seoOGLocale,
		TwitterCard:        seoTwitterCardWide,
		TwitterTitle:       title,
		TwitterDescription: description,
	}
}

func (s *SeoService) absoluteURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.siteCfg.TrimmedSiteURL() + path
}

// mergeSeoOverride applies non-empty override fields; og and twitter text fall
// back to the override meta text before the generated defaults.
func mergeSeoOverride(meta *SeoMeta, override *models.SeoFields) {
	meta.MetaTitle = firstNonEmpty(override.MetaTitle, meta.MetaTitle)
	meta.MetaDescription = firstNonEmpty(override.MetaDescription, meta.MetaDescription)
	meta.MetaAuthor = firstNonEmpty(override.MetaAuthor, meta.MetaAuthor)
	meta.CanonicalURL = firstNonEmpty(override.CanonicalURL, meta.CanonicalURL)
	meta.OGTitle = firstNonEmpty(override.OGTitle, override.MetaTitle, meta.OGTitle)
	meta.OGDescription = firstNonEmpty(override.OGDescription, override.MetaDescription, meta.OGDescription)
	meta.OGImage = firstNonEmpty(override.OGImage, meta.OGImage)
	meta.OGType = firstNonEmpty(override.OGType, meta.OGType)
	meta.OGSiteName = firstNonEmpty(override.OGSiteName, meta.OGSiteName)
	meta.TwitterCard = firstNonEmpty(override.TwitterCard, meta.TwitterCard)
	meta.TwitterTitle = firstNonEmpty(override.TwitterTitle, override.MetaTitle, meta.TwitterTitle)
	meta.TwitterDescription = firstNonEmpty(override.TwitterDescription, override.MetaDescription, meta.TwitterDescription)
	meta.TwitterImage = firstNonEmpty(override.TwitterImage, override.OGImage, meta.TwitterImage)
}

func trimSeoFields(fields models.SeoFields) models.SeoFields {
	return models.SeoFields{
		MetaTitle:          truncateRunes(fields.MetaTitle, 60),
		MetaDescription:    truncateRunes(fields.MetaDescription, 160),
		MetaAuthor:         truncateRunes(fields.MetaAuthor, 100),
		OGTitle:            truncateRunes(fields.OGTitle, 95),
		OGDescription:      truncateRunes(fields.OGDescription, 200),
		OGImage:            strings.TrimSpace(fields.OGImage),
		OGType:             truncateRunes(fields.OGType, 50),
		OGSiteName:         truncateRunes(fields.OGSiteName, 100),
		TwitterCard:        truncateRunes(fields.TwitterCard, 50),
		TwitterTitle:       truncateRunes(fields.TwitterTitle, 70),
		TwitterDescription: truncateRunes(fields.TwitterDescription, 200),
		TwitterImage:       strings.TrimSpace(fields.TwitterImage),
		CanonicalURL:       strings.TrimSpace(fields.CanonicalURL),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func truncateRunes(value string, max int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
