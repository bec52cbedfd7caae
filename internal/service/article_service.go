package service

import (
	"context"
	"strings"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/queue"
	"github.com/jagoron-news/internal/repository"
)

// ArticleService public feeds, article detail and newsroom article management
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	sectionRepo  repository.SectionRepository
	taxonomyRepo repository.TaxonomyRepository
	specialRepo  repository.SpecialRepository
	ranker       *RelevanceRanker
	queueClient  *queue.Client
	contentCfg   config.ContentConfig
	clock        Clock
}

// NewArticleService creates the article service
func NewArticleService(
	articleRepo repository.ArticleRepository,
	sectionRepo repository.SectionRepository,
	taxonomyRepo repository.TaxonomyRepository,
	specialRepo repository.SpecialRepository,
	ranker *RelevanceRanker,
	queueClient *queue.Client,
	contentCfg config.ContentConfig,
	clock Clock,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		sectionRepo:  sectionRepo,
		taxonomyRepo: taxonomyRepo,
		specialRepo:  specialRepo,
		ranker:       ranker,
		queueClient:  queueClient,
		contentCfg:   contentCfg,
		clock:        clock,
	}
}

// ListingPage one page of a public article listing
type ListingPage struct {
	Articles   []models.Article `json:"articles"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int64            `json:"total"`
	PageWindow []int            `json:"page_window"`
	Tag        *models.Tag      `json:"tag,omitempty"`
}

// ArticleDetail resolved article with its panels.
// MainNews and Elected come from the article's own section.
type ArticleDetail struct {
	Article   *models.Article  `json:"article"`
	ViewCount int64            `json:"view_count"`
	Related   []models.Article `json:"related"`
	MainNews  []models.Article `json:"main_news"`
	Elected   []models.Article `json:"elected"`
}

// SpecialBlock home page special section
type SpecialBlock struct {
	Title *models.SpecialTitle `json:"title"`
	Main  []models.Article     `json:"main"`
	Side  []models.Article     `json:"side"`
}

// HomePanels category driven home panels; pinned articles never appear
type HomePanels struct {
	Lead        *models.Article  `json:"lead"`           // newest hot topic
	Hero        []models.Article `json:"hero"`           // next hot topics
	Live        *models.Article  `json:"live,omitempty"` // set only when the lead is also live
	Secondary   []models.Article `json:"secondary"`
	ElectedLead *models.Article  `json:"elected_lead"`
	Elected     []models.Article `json:"elected"`
}

// HomeFeed home page data
type HomeFeed struct {
	Latest   []models.Article `json:"latest"`
	Specials []SpecialBlock   `json:"specials"`
	MostRead []models.Article `json:"most_read"`
	Panels   HomePanels       `json:"panels"`
}

// ArticleInput admin article create/update input
type ArticleInput struct {
	SectionID          *uint
	SubsectionID       *uint
	CategoryIDs        []uint
	TagIDs             []uint
	TopSubTitle        string
	Title              string
	SubTitle           string
	Content            string
	SubContent         string
	HeadingImage       string
	HeadingImageTitle  string
	MainImage          string
	MainImageTitle     string
	Reporter           string
	ScheduledPublishAt *time.Time
}

// ArticleAdminQuery admin article list query
type ArticleAdminQuery struct {
	Page         int
	PageSize     int
	SectionID    *uint
	SubsectionID *uint
	Search       string
	Status       string
}

// homeLatestLimit number of latest articles on the home page
const homeLatestLimit = 20

// Home assembles the home page: latest visible articles not pinned in an active
// special section, special blocks and most read.
func (s *ArticleService) Home() (*HomeFeed, error) {
	now := s.clock.now()
	pinned, err := s.specialRepo.PinnedArticleIDs(true)
	if err != nil {
		return nil, err
	}
	latest, err := s.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           now,
		ExcludeIDs:    pinned,
		Limit:         homeLatestLimit,
		WithRelations: true,
	})
	if err != nil {
		return nil, err
	}

	titles, err := s.specialRepo.ListTitles(true)
	if err != nil {
		return nil, err
	}
	specials := make([]SpecialBlock, 0, len(titles))
	for i := range titles {
		title := titles[i]
		mainRows, err := s.specialRepo.ListArticles(title.ID, boolPtr(true), now, constants.SpecialMainArticleLimit)
		if err != nil {
			return nil, err
		}
		sideRows, err := s.specialRepo.ListArticles(title.ID, boolPtr(false), now, constants.SpecialSideArticleLimit)
		if err != nil {
			return nil, err
		}
		specials = append(specials, SpecialBlock{
			Title: &title,
			Main:  specialRowArticles(mainRows),
			Side:  specialRowArticles(sideRows),
		})
	}

	panels, err := s.homePanels(now, pinned)
	if err != nil {
		return nil, err
	}
	mostRead, err := s.MostRead()
	if err != nil {
		return nil, err
	}
	return &HomeFeed{Latest: latest, Specials: specials, MostRead: mostRead, Panels: panels}, nil
}

func (s *ArticleService) homePanels(now time.Time, pinned []uint) (HomePanels, error) {
	panels := HomePanels{Hero: []models.Article{}, Secondary: []models.Article{}, Elected: []models.Article{}}
	names := s.contentCfg.Panels

	hot, err := s.categoryArticles(names.HotTopic, repository.ArticleVisibleFilter{
		Now:        now,
		ExcludeIDs: pinned,
		Limit:      1 + constants.HomeHeroLimit,
	})
	if err != nil {
		return panels, err
	}
	if len(hot) > 0 {
		panels.Lead = &hot[0]
		panels.Hero = hot[1:]
	}

	live, err := s.categoryArticles(names.Live, repository.ArticleVisibleFilter{Now: now, ExcludeIDs: pinned, Limit: 1})
	if err != nil {
		return panels, err
	}
	if len(live) > 0 && panels.Lead != nil && live[0].ID == panels.Lead.ID {
		panels.Live = panels.Lead
	}

	secondary, err := s.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           now,
		ExcludeIDs:    pinned,
		Offset:        constants.HomeSecondaryOffset,
		Limit:         constants.HomeSecondaryLimit,
		WithRelations: true,
	})
	if err != nil {
		return panels, err
	}
	panels.Secondary = secondary

	elected, err := s.categoryArticles(names.Elected, repository.ArticleVisibleFilter{
		Now:        now,
		ExcludeIDs: pinned,
		Limit:      constants.HomeElectedLimit,
	})
	if err != nil {
		return panels, err
	}
	if len(elected) > 0 {
		panels.ElectedLead = &elected[0]
		panels.Elected = elected[1:]
	}
	return panels, nil
}

// categoryArticles lists visible articles of the named category.
// An empty or unknown name yields no articles.
func (s *ArticleService) categoryArticles(name string, filter repository.ArticleVisibleFilter) ([]models.Article, error) {
	ids, err := s.taxonomyRepo.CategoryIDsByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Article{}, nil
	}
	filter.CategoryIDs = ids
	filter.WithRelations = true
	return s.articleRepo.FindVisible(filter)
}

// ListingQuery listing page options taken from the query string
type ListingQuery struct {
	Page     int
	Tag      string // tag slug
	Category string // category name
}

// Listing returns one page of the listing a resolution points at.
// An unknown tag slug or category name yields an empty page rather than an error.
func (s *ArticleService) Listing(res *Resolution, query ListingQuery) (*ListingPage, error) {
	if res == nil {
		return nil, ErrContentNotFound
	}
	filter := repository.ArticleVisibleFilter{Now: s.clock.now(), WithRelations: true}
	switch res.Kind {
	case ResolutionSection:
		filter.SectionID = &res.Section.ID
	case ResolutionSubsection:
		filter.SectionID = &res.Section.ID
		filter.SubsectionID = &res.Subsection.ID
	case ResolutionAllNews:
	default:
		return nil, ErrContentNotFound
	}

	var tag *models.Tag
	if slug := strings.TrimSpace(query.Tag); slug != "" {
		found, err := s.taxonomyRepo.GetTagBySlug(slug)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return emptyListingPage(), nil
		}
		tag = found
		filter.TagID = &found.ID
	}
	if name := strings.TrimSpace(query.Category); name != "" {
		ids, err := s.taxonomyRepo.CategoryIDsByName(name)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return emptyListingPage(), nil
		}
		filter.CategoryIDs = ids
	}
	result, err := s.paginate(filter, query.Page)
	if err != nil {
		return nil, err
	}
	result.Tag = tag
	return result, nil
}

// ListByTag lists visible articles carrying the tag slug
func (s *ArticleService) ListByTag(slug string, page int) (*ListingPage, error) {
	tag, err := s.taxonomyRepo.GetTagBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	result, err := s.paginate(repository.ArticleVisibleFilter{
		Now:           s.clock.now(),
		TagID:         &tag.ID,
		WithRelations: true,
	}, page)
	if err != nil {
		return nil, err
	}
	result.Tag = tag
	return result, nil
}

// Search lists visible articles whose title contains query
func (s *ArticleService) Search(query string, page int) (*ListingPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyListingPage(), nil
	}
	return s.paginate(repository.ArticleVisibleFilter{
		Now:           s.clock.now(),
		Search:        query,
		WithRelations: true,
	}, page)
}

func (s *ArticleService) paginate(filter repository.ArticleVisibleFilter, page int) (*ListingPage, error) {
	total, err := s.articleRepo.CountVisible(filter)
	if err != nil {
		return nil, err
	}
	pageSize := constants.ListingPageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	page = clampPage(page, totalPages)
	if total == 0 {
		return emptyListingPage(), nil
	}

	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	articles, err := s.articleRepo.FindVisible(filter)
	if err != nil {
		return nil, err
	}
	return &ListingPage{
		Articles:   articles,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		PageWindow: PageWindow(page, totalPages),
	}, nil
}

func emptyListingPage() *ListingPage {
	return &ListingPage{Articles: []models.Article{}, Page: 1, PageWindow: []int{}}
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return page
}

// PageWindow returns at most seven page numbers around current
func PageWindow(current, totalPages int) []int {
	window := constants.ListingPageWindow
	if totalPages <= 0 {
		return []int{}
	}
	current = clampPage(current, totalPages)
	start, end := 1, totalPages
	half := window / 2
	switch {
	case totalPages <= window:
	case current <= half+1:
		end = window
	case current >= totalPages-half:
		start = totalPages - window + 1
	default:
		start, end = current-half, current+half
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Detail loads the panels of a resolved article and counts the view of a
// non-privileged reader.
func (s *ArticleService) Detail(res *Resolution, privileged bool) (*ArticleDetail, error) {
	if res == nil || res.Kind != ResolutionArticle || res.Article == nil {
		return nil, ErrContentNotFound
	}
	article := res.Article
	if !privileged {
		s.RecordView(article.ID)
	}
	views, err := s.articleRepo.CountViews(article.ID)
	if err != nil {
		return nil, err
	}
	related, err := s.Related(article, s.contentCfg.RelatedLimit)
	if err != nil {
		return nil, err
	}
	detail := &ArticleDetail{
		Article:   article,
		ViewCount: views,
		Related:   related,
		MainNews:  []models.Article{},
		Elected:   []models.Article{},
	}
	if article.SectionID == nil {
		return detail, nil
	}
	panel := repository.ArticleVisibleFilter{
		Now:        s.clock.now(),
		SectionID:  article.SectionID,
		ExcludeIDs: []uint{article.ID},
	}
	panel.Limit = constants.DetailMainNewsLimit
	if detail.MainNews, err = s.categoryArticles(s.contentCfg.Panels.MainNews, panel); err != nil {
		return nil, err
	}
	panel.Limit = constants.DetailElectedLimit
	if detail.Elected, err = s.categoryArticles(s.contentCfg.Panels.Elected, panel); err != nil {
		return nil, err
	}
	return detail, nil
}

// RecordView counts one view; failures are logged, never surfaced to the reader
func (s *ArticleService) RecordView(articleID uint) {
	if err := s.articleRepo.IncrementViewAtomic(articleID); err != nil {
		logger.Warnw("article_view_increment_failed", "article_id", articleID, "error", err)
	}
}

// Related returns the related panel. Only ids are cached; articles are always
// reloaded through the visibility filter, and the panel is ranked again when a
// cached id no longer loads.
func (s *ArticleService) Related(article *models.Article, limit int) ([]models.Article, error) {
	if article == nil {
		return []models.Article{}, nil
	}
	if limit <= 0 {
		limit = constants.DefaultRelatedLimit
	}
	ctx := context.Background()
	ids, hit, err := cache.GetRelatedIDs(ctx, article.ID, limit)
	if err != nil {
		logger.Warnw("article_related_cache_get_failed", "article_id", article.ID, "error", err)
	}
	if hit {
		loaded, err := s.loadInOrder(ids)
		if err != nil {
			return nil, err
		}
		if len(loaded) == len(ids) {
			return loaded, nil
		}
		logger.Debugw("article_related_cache_stale", "article_id", article.ID, "cached", len(ids), "loaded", len(loaded))
	}

	related, err := s.ranker.Related(article, limit)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(s.contentCfg.RelatedCacheTTLSeconds) * time.Second
	if ttl > 0 {
		if err := cache.SetRelatedIDs(ctx, article.ID, limit, articleIDs(related), ttl); err != nil {
			logger.Warnw("article_related_cache_set_failed", "article_id", article.ID, "error", err)
		}
	}
	return related, nil
}

func (s *ArticleService) loadInOrder(ids []uint) ([]models.Article, error) {
	if len(ids) == 0 {
		return []models.Article{}, nil
	}
	rows, err := s.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           s.clock.now(),
		IDs:           ids,
		WithRelations: true,
	})
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Article, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.Article, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// MostRead top visible articles by view count
func (s *ArticleService) MostRead() ([]models.Article, error) {
	return s.articleRepo.MostViewed(repository.MostViewedFilter{
		Now:   s.clock.now(),
		Limit: constants.MostReadLimit,
	})
}

// TodaysMostViewed most viewed visible articles created since midnight UTC
func (s *ArticleService) TodaysMostViewed() ([]models.Article, error) {
	now := s.clock.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.articleRepo.MostViewed(repository.MostViewedFilter{
		Now:          now,
		CreatedSince: &midnight,
		Limit:        constants.TodaysMostViewedLimit,
	})
}

// ListAdmin lists articles for the newsroom, scheduled ones included
func (s *ArticleService) ListAdmin(query ArticleAdminQuery) ([]models.Article, int64, error) {
	return s.articleRepo.ListAdmin(repository.ArticleAdminFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		SectionID:    query.SectionID,
		SubsectionID: query.SubsectionID,
		Search:       strings.TrimSpace(query.Search),
		Status:       strings.TrimSpace(query.Status),
		Now:          s.clock.now(),
	})
}

// GetAdmin loads an article regardless of its schedule
func (s *ArticleService) GetAdmin(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// Create saves a new article on behalf of adminID
func (s *ArticleService) Create(input ArticleInput, adminID uint) (*models.Article, error) {
	article := &models.Article{}
	if err := s.apply(article, input); err != nil {
		return nil, err
	}
	if adminID != 0 {
		article.CreatedByID = &adminID
		article.UpdatedByID = &adminID
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	s.afterSave(article)
	return article, nil
}

// Update saves an existing article on behalf of adminID
func (s *ArticleService) Update(id uint, input ArticleInput, adminID uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if err := s.apply(article, input); err != nil {
		return nil, err
	}
	if adminID != 0 {
		article.UpdatedByID = &adminID
	}
	article.Section = nil
	article.Subsection = nil
	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}
	s.afterSave(article)
	return s.GetAdmin(id)
}

// Delete removes an article and its dependent rows
func (s *ArticleService) Delete(id uint) error {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}
	if err := s.articleRepo.Delete(id); err != nil {
		return err
	}
	invalidateContent(s.queueClient, "article_deleted", id)
	return nil
}

func (s *ArticleService) apply(article *models.Article, input ArticleInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if input.SectionID == nil || *input.SectionID == 0 {
		return ErrArticleSectionRequired
	}
	section, err := s.sectionRepo.GetSectionByID(*input.SectionID)
	if err != nil {
		return err
	}
	if section == nil {
		return ErrArticleSectionRequired
	}

	var subsectionID *uint
	if input.SubsectionID != nil && *input.SubsectionID != 0 {
		subsection, err := s.sectionRepo.GetSubsectionByID(*input.SubsectionID)
		if err != nil {
			return err
		}
		if subsection == nil || subsection.SectionID == nil || *subsection.SectionID != section.ID {
			return ErrSubsectionSectionMismatch
		}
		subsectionID = &subsection.ID
	}

	categories, err := s.taxonomyRepo.FindCategoriesByIDs(uniqueIDs(input.CategoryIDs))
	if err != nil {
		return err
	}
	if len(categories) != len(uniqueIDs(input.CategoryIDs)) {
		return ErrCategoryNotFound
	}
	tags, err := s.taxonomyRepo.FindTagsByIDs(uniqueIDs(input.TagIDs))
	if err != nil {
		return err
	}
	if len(tags) != len(uniqueIDs(input.TagIDs)) {
		return ErrTagNotFound
	}

	article.SectionID = &section.ID
	article.SubsectionID = subsectionID
	article.Categories = categories
	article.Tags = tags
	article.TopSubTitle = strings.TrimSpace(input.TopSubTitle)
	article.Title = title
	article.SubTitle = strings.TrimSpace(input.SubTitle)
	article.Content = input.Content
	article.SubContent = input.SubContent
	article.HeadingImage = strings.TrimSpace(input.HeadingImage)
	article.HeadingImageTitle = strings.TrimSpace(input.HeadingImageTitle)
	article.MainImage = strings.TrimSpace(input.MainImage)
	article.MainImageTitle = strings.TrimSpace(input.MainImageTitle)
	article.Reporter = strings.TrimSpace(input.Reporter)
	article.ScheduledPublishAt = nil
	if input.ScheduledPublishAt != nil {
		at := input.ScheduledPublishAt.UTC()
		article.ScheduledPublishAt = &at
	}
	return nil
}

// afterSave purges cached listings now and, for a future schedule, once more
// when the article goes live.
func (s *ArticleService) afterSave(article *models.Article) {
	invalidateContent(s.queueClient, "article_saved", article.ID)
	at := article.ScheduledPublishAt
	if at == nil || !at.After(s.clock.now()) {
		return
	}
	payload := queue.ArticlePublishPayload{ArticleID: article.ID, ScheduledAt: at.Unix()}
	if err := s.queueClient.EnqueueArticlePublish(payload, *at); err != nil {
		logger.Warnw("article_publish_enqueue_failed", "article_id", article.ID, "scheduled_at", at, "error", err)
	}
}

// PublishDue handles an article whose schedule has passed. It reports false when
// the article is gone, rescheduled or not yet due.
func (s *ArticleService) PublishDue(articleID uint, scheduledAt int64) (bool, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return false, err
	}
	if article == nil || article.ScheduledPublishAt == nil {
		return false, nil
	}
	if scheduledAt != 0 && article.ScheduledPublishAt.Unix() != scheduledAt {
		return false, nil
	}
	if !IsVisible(article, s.clock.now(), false) {
		return false, nil
	}
	purgeContentNow("article_published")
	logger.Infow("article_published", "article_id", article.ID, "scheduled_at", article.ScheduledPublishAt)
	return true, nil
}

// SweepPublished purges caches when any schedule fell into (since, now]
func (s *ArticleService) SweepPublished(since time.Time) (int, time.Time, error) {
	now := s.clock.now()
	due, err := s.articleRepo.ListScheduledBetween(since, now)
	if err != nil {
		return 0, since, err
	}
	if len(due) > 0 {
		purgeContentNow("publish_sweep")
		logger.Infow("article_publish_sweep", "published", len(due), "since", since, "until", now)
	}
	return len(due), now, nil
}

func specialRowArticles(rows []models.SpecialArticle) []models.Article {
	articles := make([]models.Article, 0, len(rows))
	for _, row := range rows {
		if row.Article != nil {
			articles = append(articles, *row.Article)
		}
	}
	return articles
}

func articleIDs(articles []models.Article) []uint {
	ids := make([]uint, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
	}
	return ids
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func boolPtr(v bool) *bool {
	return &v
}
