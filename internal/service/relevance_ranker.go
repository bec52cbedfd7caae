package service

import (
	"sort"
	"strings"
	"time"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// RelevanceRanker fills the related panel tier by tier:
// shared category and section, shared category, same subsection, same section,
// title overlap and finally recency.
type RelevanceRanker struct {
	articleRepo repository.ArticleRepository
	clock       Clock
}

// NewRelevanceRanker creates the ranker
func NewRelevanceRanker(articleRepo repository.ArticleRepository, clock Clock) *RelevanceRanker {
	return &RelevanceRanker{articleRepo: articleRepo, clock: clock}
}

type rankState struct {
	limit    int
	selected []models.Article
	seen     map[uint]struct{}
}

func (s *rankState) remaining() int {
	return s.limit - len(s.selected)
}

func (s *rankState) excluded() []uint {
	ids := make([]uint, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *rankState) add(candidates []models.Article) {
	for _, candidate := range candidates {
		if s.remaining() <= 0 {
			return
		}
		if _, ok := s.seen[candidate.ID]; ok {
			continue
		}
		s.seen[candidate.ID] = struct{}{}
		s.selected = append(s.selected, candidate)
	}
}

// Related returns at most limit visible articles related to article, never the article itself
func (r *RelevanceRanker) Related(article *models.Article, limit int) ([]models.Article, error) {
	if article == nil {
		return []models.Article{}, nil
	}
	if limit <= 0 {
		limit = constants.DefaultRelatedLimit
	}
	state := &rankState{
		limit:    limit,
		selected: make([]models.Article, 0, limit),
		seen:     map[uint]struct{}{article.ID: {}},
	}
	now := r.clock.now()
	categoryIDs := article.CategoryIDs()

	tiers := make([]repository.ArticleVisibleFilter, 0, 4)
	if len(categoryIDs) > 0 && article.SectionID != nil {
		tiers = append(tiers, repository.ArticleVisibleFilter{CategoryIDs: categoryIDs, SectionID: article.SectionID})
	}
	if len(categoryIDs) > 0 {
		tiers = append(tiers, repository.ArticleVisibleFilter{CategoryIDs: categoryIDs})
	}
	if article.SectionID != nil && article.SubsectionID != nil {
		tiers = append(tiers, repository.ArticleVisibleFilter{SectionID: article.SectionID, SubsectionID: article.SubsectionID})
	}
	if article.SectionID != nil {
		tiers = append(tiers, repository.ArticleVisibleFilter{SectionID: article.SectionID})
	}

	for _, filter := range tiers {
		if state.remaining() <= 0 {
			break
		}
		filter.Now = now
		filter.ExcludeIDs = state.excluded()
		filter.Limit = 2 * state.remaining()
		filter.WithRelations = true
		candidates, err := r.articleRepo.FindVisible(filter)
		if err != nil {
			return nil, err
		}
		state.add(candidates)
	}

	if state.remaining() > 0 {
		if err := r.addTitleMatches(state, article.Title, now); err != nil {
			return nil, err
		}
	}

	if state.remaining() > 0 {
		recent, err := r.articleRepo.FindVisible(repository.ArticleVisibleFilter{
			Now:           now,
			ExcludeIDs:    state.excluded(),
			Limit:         2 * state.remaining(),
			WithRelations: true,
		})
		if err != nil {
			return nil, err
		}
		state.add(recent)
	}

	return state.selected, nil
}

func (r *RelevanceRanker) addTitleMatches(state *rankState, title string, now time.Time) error {
	words := titleWords(title)
	if len(words) == 0 {
		return nil
	}
	window, err := r.articleRepo.FindVisible(repository.ArticleVisibleFilter{
		Now:           now,
		ExcludeIDs:    state.excluded(),
		Limit:         constants.RelatedTitleWindow,
		WithRelations: true,
	})
	if err != nil {
		return err
	}

	type scored struct {
		article models.Article
		score   float64
	}
	matches := make([]scored, 0, len(window))
	for _, candidate := range window {
		score := titleOverlap(words, titleWords(candidate.Title))
		if score > 0 {
			matches = append(matches, scored{article: candidate, score: score})
		}
	}
	// window is newest first, so a stable sort keeps recency as the tie-break
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	limit := 2 * state.remaining()
	picked := make([]models.Article, 0, limit)
	for i := 0; i < len(matches) && i < limit; i++ {
		picked = append(picked, matches[i].article)
	}
	state.add(picked)
	return nil
}

func titleWords(title string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(title))
	words := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		words[field] = struct{}{}
	}
	return words
}

// titleOverlap is |a ∩ b| / max(|a|, |b|)
func titleOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for word := range a {
		if _, ok := b[word]; ok {
			common++
		}
	}
	denominator := len(a)
	if len(b) > denominator {
		denominator = len(b)
	}
	return float64(common) / float64(denominator)
}
