package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

func TestRelatedPrefersCategoryAndSectionTier(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	other := seedSection(t, db, "বিশ্ব", "world", 2)
	lead := &models.Category{Name: "lead"}
	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	x := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "x", CreatedAt: now.Add(-10 * time.Hour),
		Categories: []models.Category{*lead}})

	p1 := make([]uint, 0, 3)
	for i := 0; i < 3; i++ {
		a := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "p1",
			CreatedAt: now.Add(-time.Duration(5+i) * time.Hour), Categories: []models.Category{*lead}})
		p1 = append(p1, a.ID)
	}
	p2 := make([]uint, 0, 5)
	for i := 0; i < 5; i++ {
		a := seedArticle(t, db, &models.Article{SectionID: &other.ID, Title: "p2",
			CreatedAt: now.Add(-time.Duration(1+i) * time.Minute), Categories: []models.Category{*lead}})
		p2 = append(p2, a.ID)
	}

	ranker := NewRelevanceRanker(repository.NewArticleRepository(db), fixedClock(now))
	related, err := ranker.Related(x, 4)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	want := append(append([]uint{}, p1...), p2[0])
	if got := idsOf(related); !reflect.DeepEqual(got, want) {
		t.Fatalf("related want %v got %v", want, got)
	}
}

func TestRelatedExcludesSelfDuplicatesAndScheduled(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "খেলা", "sports", 1)
	sub := seedSubsection(t, db, section, "ক্রিকেট", "cricket", true)
	lead := &models.Category{Name: "lead"}
	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	x := seedArticle(t, db, &models.Article{SectionID: &section.ID, SubsectionID: &sub.ID, Title: "x",
		CreatedAt: now.Add(-time.Hour), Categories: []models.Category{*lead}})
	future := now.Add(time.Hour)
	hidden := seedArticle(t, db, &models.Article{SectionID: &section.ID, SubsectionID: &sub.ID, Title: "hidden",
		ScheduledPublishAt: &future, Categories: []models.Category{*lead}})
	// matches tiers A, B, C and D at once
	shared := seedArticle(t, db, &models.Article{SectionID: &section.ID, SubsectionID: &sub.ID, Title: "shared",
		CreatedAt: now.Add(-2 * time.Hour), Categories: []models.Category{*lead}})
	for i := 0; i < 3; i++ {
		seedArticle(t, db, &models.Article{Title: "filler", CreatedAt: now.Add(-time.Duration(3+i) * time.Hour)})
	}

	ranker := NewRelevanceRanker(repository.NewArticleRepository(db), fixedClock(now))
	related, err := ranker.Related(x, 10)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	if len(related) != 4 {
		t.Fatalf("related want 4 visible others got %v", idsOf(related))
	}
	if related[0].ID != shared.ID {
		t.Fatalf("shared article should lead, got %v", idsOf(related))
	}
	seen := map[uint]bool{}
	for _, article := range related {
		if article.ID == x.ID || article.ID == hidden.ID {
			t.Fatalf("related must not include self or scheduled, got %v", idsOf(related))
		}
		if seen[article.ID] {
			t.Fatalf("duplicate %d in %v", article.ID, idsOf(related))
		}
		seen[article.ID] = true
	}
}

func TestRelatedTitleTierBeforeRecency(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	x := seedArticle(t, db, &models.Article{Title: "Padma Bridge toll collection", CreatedAt: now.Add(-time.Hour)})
	newest := seedArticle(t, db, &models.Article{Title: "Weather update", CreatedAt: now.Add(-time.Minute)})
	half := seedArticle(t, db, &models.Article{Title: "padma bridge traffic", CreatedAt: now.Add(-3 * time.Hour)})
	strong := seedArticle(t, db, &models.Article{Title: "Padma bridge toll record", CreatedAt: now.Add(-4 * time.Hour)})

	ranker := NewRelevanceRanker(repository.NewArticleRepository(db), fixedClock(now))
	related, err := ranker.Related(x, 3)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	want := []uint{strong.ID, half.ID, newest.ID}
	if got := idsOf(related); !reflect.DeepEqual(got, want) {
		t.Fatalf("related want %v got %v", want, got)
	}
}

func TestRelatedDefaultLimit(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	x := seedArticle(t, db, &models.Article{Title: "x", CreatedAt: now.Add(-time.Hour)})
	for i := 0; i < 12; i++ {
		seedArticle(t, db, &models.Article{Title: "other", CreatedAt: now.Add(-time.Duration(2+i) * time.Hour)})
	}

	ranker := NewRelevanceRanker(repository.NewArticleRepository(db), fixedClock(now))
	related, err := ranker.Related(x, 0)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	if len(related) != 8 {
		t.Fatalf("default limit want 8 got %d", len(related))
	}
}

func TestTitleOverlap(t *testing.T) {
	a := titleWords("Padma Bridge toll collection")
	b := titleWords("padma bridge traffic")
	if got := titleOverlap(a, b); got != 0.5 {
		t.Fatalf("overlap want 0.5 got %v", got)
	}
	if got := titleOverlap(a, titleWords("")); got != 0 {
		t.Fatalf("empty overlap want 0 got %v", got)
	}
}
