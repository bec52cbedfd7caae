package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

const (
	sitemapArticlePageSize = 1000
	sitemapDefaultTTL      = 15 * time.Minute
	googleNewsImageCaption = "ছবি : সংগৃহীত"
)

// newsroomZone publication dates are reported in Bangladesh time
var newsroomZone = time.FixedZone("BDT", 6*60*60)

// SitemapEntry one url of a sitemap
type SitemapEntry struct {
	Loc        string    `json:"loc"`
	LastMod    time.Time `json:"lastmod"`
	ChangeFreq string    `json:"changefreq"`
	Priority   string    `json:"priority"`
}

// SitemapPage one page of article urls
type SitemapPage struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Entries    []SitemapEntry `json:"entries"`
}

// GoogleNewsItem one Google News url
type GoogleNewsItem struct {
	Loc             string `json:"loc"`
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"`
	Keywords        string `json:"keywords"`
	ImageURL        string `json:"image_url,omitempty"`
	ImageCaption    string `json:"image_caption"`
}

// GoogleNewsFeed Google News sitemap data
type GoogleNewsFeed struct {
	PublicationName     string           `json:"publication_name"`
	PublicationLanguage string           `json:"publication_language"`
	Items               []GoogleNewsItem `json:"items"`
}

// SitemapService sitemap and Google News data over visible content only
type SitemapService struct {
	sectionRepo  repository.SectionRepository
	articleRepo  repository.ArticleRepository
	taxonomyRepo repository.TaxonomyRepository
	siteRepo     repository.SiteRepository
	siteCfg      config.SiteConfig
	ttl          time.Duration
	clock        Clock
}

// NewSitemapService creates the sitemap service
func NewSitemapService(
	sectionRepo repository.SectionRepository,
	articleRepo repository.ArticleRepository,
	taxonomyRepo repository.TaxonomyRepository,
	siteRepo repository.SiteRepository,
	siteCfg config.SiteConfig,
	contentCfg config.ContentConfig,
	clock Clock,
) *SitemapService {
	ttl := time.Duration(contentCfg.SitemapCacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = sitemapDefaultTTL
	}
	return &SitemapService{
		sectionRepo:  sectionRepo,
		articleRepo:  articleRepo,
		taxonomyRepo: taxonomyRepo,
		siteRepo:     siteRepo,
		siteCfg:      siteCfg,
		ttl:          ttl,
		clock:        clock,
	}
}

// Sections lists active sections and subsections that own a slug path
func (s *SitemapService) Sections() ([]SitemapEntry, error) {
	var entries []SitemapEntry
	if s.cached("sections", &entries) {
		return entries, nil
	}

	sections, err := s.sectionRepo.ListSections(repository.SectionListFilter{ActiveOnly: true, WithSubsections: true})
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	entries = make([]SitemapEntry, 0, len(sections))
	for i := range sections {
		section := &sections[i]
		if SectionSlug(section) == "" {
			continue
		}
		lastMod, err := s.latestUpdate(repository.ArticleVisibleFilter{SectionID: &section.ID}, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, SitemapEntry{
			Loc:        s.absoluteURL(SectionCanonicalPath(section)),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
		for j := range section.Subsections {
			subsection := section.Subsections[j]
			if SubsectionSlug(&subsection) == "" {
				continue
			}
			lastMod, err := s.latestUpdate(repository.ArticleVisibleFilter{SubsectionID: &subsection.ID}, now)
			if err != nil {
				return nil, err
			}
			entries = append(entries, SitemapEntry{
				Loc:        s.absoluteURL(SubsectionCanonicalPath(section, &subsection)),
				LastMod:    lastMod,
				ChangeFreq: "weekly",
				Priority:   "0.7",
			})
		}
	}
	s.store("sections", entries)
	return entries, nil
}

func (s *SitemapService) latestUpdate(filter repository.ArticleVisibleFilter, now time.Time) (time.Time, error) {
	filter.Now = now
	filter.Limit = 1
	filter.LatestUpdated = true
	rows, err := s.articleRepo.FindVisible(filter)
	if err != nil {
		return time.Time{}, err
	}
	if len(rows) == 0 {
		return now, nil
	}
	return rows[0].UpdatedAt, nil
}

// Topics lists tags carried by at least one visible article
func (s *SitemapService) Topics() ([]SitemapEntry, error) {
	var entries []SitemapEntry
	if s.cached("topics", &entries) {
		return entries, nil
	}

	latest, err := s.articleRepo.TagsLastModified(s.clock.now())
	if err != nil {
		return nil, err
	}
	tags, err := s.taxonomyRepo.FindTagsByIDs(mapKeys(latest))
	if err != nil {
		return nil, err
	}
	entries = make([]SitemapEntry, 0, len(tags))
	for _, tag := range tags {
		if tag.Slug == "" {
			continue
		}
		entries = append(entries, SitemapEntry{
			Loc:        s.absoluteURL(listingQueryPath("tag", tag.Slug)),
			LastMod:    latest[tag.ID],
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	s.store("topics", entries)
	return entries, nil
}

// Categories lists categories of at least one visible article
func (s *SitemapService) Categories() ([]SitemapEntry, error) {
	var entries []SitemapEntry
	if s.cached("categories", &entries) {
		return entries, nil
	}

	latest, err := s.articleRepo.CategoriesLastModified(s.clock.now())
	if err != nil {
		return nil, err
	}
	categories, err := s.taxonomyRepo.FindCategoriesByIDs(mapKeys(latest))
	if err != nil {
		return nil, err
	}
	entries = make([]SitemapEntry, 0, len(categories))
	seen := make(map[string]int, len(categories))
	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			continue
		}
		lastMod := latest[category.ID]
		// categories sharing a name share one listing url
		if idx, ok := seen[name]; ok {
			if lastMod.After(entries[idx].LastMod) {
				entries[idx].LastMod = lastMod
			}
			continue
		}
		seen[name] = len(entries)
		entries = append(entries, SitemapEntry{
			Loc:        s.absoluteURL(listingQueryPath("category", name)),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}
	s.store("categories", entries)
	return entries, nil
}

func listingQueryPath(key, value string) string {
	return constants.PathLegacyListing + "?" + url.Values{key: []string{value}}.Encode()
}

func mapKeys(m map[uint]time.Time) []uint {
	keys := make([]uint, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

// Articles lists one page of visible article urls, newest first
func (s *SitemapService) Articles(page int) (*SitemapPage, error) {
	if page < 1 {
		page = 1
	}
	kind := fmt.Sprintf("articles:%d", page)
	var cached SitemapPage
	if s.cached(kind, &cached) {
		return &cached, nil
	}

	now := s.clock.now()
	total, err := s.articleRepo.CountVisible(repository.ArticleVisibleFilter{Now: now})
	if err != nil {
		return nil, err
	}
	totalPages := int((total + sitemapArticlePageSize - 1) / sitemapArticlePageSize)
	result := &SitemapPage{Page: page, TotalPages: totalPages, Entries: []SitemapEntry{}}
	if page > totalPages {
		return result, nil
	}
	rows, err := s.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           now,
		Limit:         sitemapArticlePageSize,
		Offset:        (page - 1) * sitemapArticlePageSize,
		WithRelations: true,
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		path, ok := ArticleCanonicalPath(&rows[i])
		if !ok {
			continue
		}
		result.Entries = append(result.Entries, SitemapEntry{
			Loc:        s.absoluteURL(path),
			LastMod:    rows[i].UpdatedAt,
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}
	s.store(kind, result)
	return result, nil
}

// GoogleNews lists visible articles created in the last 48 hours
func (s *SitemapService) GoogleNews() (*GoogleNewsFeed, error) {
	var cached GoogleNewsFeed
	if s.cached("news", &cached) {
		return &cached, nil
	}

	now := s.clock.now()
	since := now.Add(-constants.GoogleNewsWindowHours * time.Hour)
	rows, err := s.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           now,
		CreatedSince:  &since,
		Limit:         constants.GoogleNewsMaxItems,
		WithRelations: true,
		WithTaxonomy:  true,
	})
	if err != nil {
		return nil, err
	}
	name, err := s.publicationName()
	if err != nil {
		return nil, err
	}
	language := strings.TrimSpace(s.siteCfg.NewsLanguage)
	if language == "" {
		language = constants.GoogleNewsLanguage
	}

	feed := &GoogleNewsFeed{PublicationName: name, PublicationLanguage: language, Items: []GoogleNewsItem{}}
	for i := range rows {
		article := &rows[i]
		path, ok := ArticleCanonicalPath(article)
		if !ok {
			continue
		}
		feed.Items = append(feed.Items, GoogleNewsItem{
			Loc:             s.absoluteURL(path),
			Title:           article.Title,
			PublicationDate: article.CreatedAt.In(newsroomZone).Format(time.RFC3339),
			Keywords:        newsKeywords(article),
			ImageURL:        s.absoluteURL(firstNonEmpty(article.HeadingImage, article.MainImage)),
			ImageCaption:    firstNonEmpty(article.HeadingImageTitle, article.MainImageTitle, article.Title, googleNewsImageCaption),
		})
	}
	logger.Debugw("sitemap_google_news_built", "items", len(feed.Items), "since", since)
	s.store("news", feed)
	return feed, nil
}

func (s *SitemapService) publicationName() (string, error) {
	info, err := s.siteRepo.GetSiteInfo()
	if err != nil {
		return "", err
	}
	if info != nil && strings.TrimSpace(info.Name) != "" {
		return info.Name, nil
	}
	if name := strings.TrimSpace(s.siteCfg.NewsPublicationName); name != "" {
		return name, nil
	}
	return constants.GoogleNewsPublicationName, nil
}

func newsKeywords(article *models.Article) string {
	keywords := make([]string, 0, len(article.Categories)+2)
	for _, category := range article.Categories {
		if category.Name != "" {
			keywords = append(keywords, category.Name)
		}
	}
	if article.Section != nil && article.Section.Title != "" {
		keywords = append(keywords, article.Section.Title)
	}
	if article.Subsection != nil && article.Subsection.Title != "" {
		keywords = append(keywords, article.Subsection.Title)
	}
	return strings.Join(keywords, ", ")
}

func (s *SitemapService) absoluteURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.siteCfg.TrimmedSiteURL() + path
}

func (s *SitemapService) cached(kind string, dest interface{}) bool {
	hit, err := cache.GetJSON(context.Background(), cache.SitemapKey(kind), dest)
	if err != nil {
		logger.Warnw("sitemap_cache_get_failed", "kind", kind, "error", err)
		return false
	}
	return hit
}

func (s *SitemapService) store(kind string, value interface{}) {
	if err := cache.SetJSON(context.Background(), cache.SitemapKey(kind), value, s.ttl); err != nil {
		logger.Warnw("sitemap_cache_set_failed", "kind", kind, "error", err)
	}
}
