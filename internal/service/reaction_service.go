package service

import (
	"strings"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"

	"github.com/shopspring/decimal"
)

// ReactionService reader reactions on articles
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	articleRepo  repository.ArticleRepository
	clock        Clock
}

// NewReactionService creates the reaction service
func NewReactionService(reactionRepo repository.ReactionRepository, articleRepo repository.ArticleRepository, clock Clock) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, articleRepo: articleRepo, clock: clock}
}

// ReactionShare one reaction kind in the summary
type ReactionShare struct {
	Reaction string `json:"reaction"`
	Count    int64  `json:"count"`
	Percent  string `json:"percent"`
}

// ReactionSummary reaction counts of an article
type ReactionSummary struct {
	ArticleID uint            `json:"article_id"`
	Total     int64           `json:"total"`
	Reactions []ReactionShare `json:"reactions"`
	Mine      string          `json:"mine,omitempty"`
}

// IsValidReaction reports whether kind is an accepted reaction
func IsValidReaction(kind string) bool {
	for _, candidate := range constants.ReactionKinds {
		if candidate == kind {
			return true
		}
	}
	return false
}

// React records the visitor reaction, replacing an earlier one
func (s *ReactionService) React(articleID uint, visitorKey, kind string) (*ReactionSummary, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !IsValidReaction(kind) {
		return nil, ErrInvalidReaction
	}
	visitorKey = strings.TrimSpace(visitorKey)
	if visitorKey == "" {
		return nil, &ValidationError{Field: "visitor", Reason: "visitor key is required"}
	}
	if err := s.ensureVisible(articleID); err != nil {
		return nil, err
	}
	reaction := &models.ArticleReaction{ArticleID: articleID, VisitorKey: visitorKey, Reaction: kind}
	if err := s.reactionRepo.Upsert(reaction); err != nil {
		return nil, err
	}
	return s.Summary(articleID, visitorKey)
}

// Summary returns counts per kind with percentage shares rounded to two places
func (s *ReactionService) Summary(articleID uint, visitorKey string) (*ReactionSummary, error) {
	if err := s.ensureVisible(articleID); err != nil {
		return nil, err
	}
	rows, err := s.reactionRepo.CountByKind(articleID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Reaction] = row.Total
		total += row.Total
	}

	summary := &ReactionSummary{ArticleID: articleID, Total: total}
	hundred := decimal.NewFromInt(100)
	for _, kind := range constants.ReactionKinds {
		percent := decimal.Zero
		if total > 0 {
			percent = decimal.NewFromInt(counts[kind]).Mul(hundred).Div(decimal.NewFromInt(total))
		}
		summary.Reactions = append(summary.Reactions, ReactionShare{
			Reaction: kind,
			Count:    counts[kind],
			Percent:  percent.StringFixed(2),
		})
	}

	if key := strings.TrimSpace(visitorKey); key != "" {
		mine, err := s.reactionRepo.GetByVisitor(articleID, key)
		if err != nil {
			return nil, err
		}
		if mine != nil {
			summary.Mine = mine.Reaction
		}
	}
	return summary, nil
}

func (s *ReactionService) ensureVisible(articleID uint) error {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return err
	}
	if !IsVisible(article, s.clock.now(), false) {
		return ErrContentNotFound
	}
	return nil
}
