package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/jagoron-news/internal/models"
)

func TestFindVisibleExcludesScheduledUntilTimePasses(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	section := createTestSection(t, db, "জাতীয়", "national", 1, true)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	createTestArticle(t, db, &models.Article{SectionID: &section.ID, Title: "published", CreatedAt: base})
	createTestArticle(t, db, &models.Article{
		SectionID:          &section.ID,
		Title:              "scheduled",
		CreatedAt:          base.Add(time.Minute),
		ScheduledPublishAt: timePtr(base.Add(time.Hour)),
	})

	filter := ArticleVisibleFilter{SectionID: &section.ID, Now: base.Add(30 * time.Minute)}
	before, err := repo.CountVisible(filter)
	if err != nil {
		t.Fatalf("count visible failed: %v", err)
	}
	if before != 1 {
		t.Fatalf("visible count before schedule want 1 got %d", before)
	}

	filter.Now = base.Add(time.Hour)
	after, err := repo.CountVisible(filter)
	if err != nil {
		t.Fatalf("count visible failed: %v", err)
	}
	if after != 2 {
		t.Fatalf("visible count at schedule want 2 got %d", after)
	}

	listed, err := repo.FindVisible(filter)
	if err != nil {
		t.Fatalf("find visible failed: %v", err)
	}
	if len(listed) != 2 || listed[0].Title != "scheduled" {
		t.Fatalf("newest article should come first, got %+v", listed)
	}
}

func TestFindVisibleFilters(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	section := createTestSection(t, db, "খেলা", "sports", 1, true)
	other := createTestSection(t, db, "বিনোদন", "entertainment", 2, true)
	sub := &models.Subsection{SectionID: &section.ID, Title: "ক্রিকেট", EnglishTitle: "cricket", IsActive: true}
	mustCreate(t, db, sub)

	lead := &models.Category{Name: "lead"}
	mustCreate(t, db, lead)
	tag := &models.Tag{Name: "বিশ্বকাপ", Slug: "world-cup"}
	mustCreate(t, db, tag)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a1 := createTestArticle(t, db, &models.Article{SectionID: &section.ID, SubsectionID: &sub.ID, Title: "a1", CreatedAt: base,
		Categories: []models.Category{*lead}, Tags: []models.Tag{*tag}})
	a2 := createTestArticle(t, db, &models.Article{SectionID: &section.ID, Title: "a2", CreatedAt: base.Add(time.Minute)})
	a3 := createTestArticle(t, db, &models.Article{SectionID: &other.ID, Title: "a3 বিশেষ", CreatedAt: base.Add(2 * time.Minute),
		Categories: []models.Category{*lead}})

	now := base.Add(time.Hour)
	cases := []struct {
		name   string
		filter ArticleVisibleFilter
		want   []uint
	}{
		{"all newest first", ArticleVisibleFilter{Now: now}, []uint{a3.ID, a2.ID, a1.ID}},
		{"section", ArticleVisibleFilter{Now: now, SectionID: &section.ID}, []uint{a2.ID, a1.ID}},
		{"subsection", ArticleVisibleFilter{Now: now, SubsectionID: &sub.ID}, []uint{a1.ID}},
		{"category", ArticleVisibleFilter{Now: now, CategoryIDs: []uint{lead.ID}}, []uint{a3.ID, a1.ID}},
		{"category and section", ArticleVisibleFilter{Now: now, CategoryIDs: []uint{lead.ID}, SectionID: &other.ID}, []uint{a3.ID}},
		{"tag", ArticleVisibleFilter{Now: now, TagID: &tag.ID}, []uint{a1.ID}},
		{"exclude", ArticleVisibleFilter{Now: now, ExcludeIDs: []uint{a3.ID, a1.ID}}, []uint{a2.ID}},
		{"ids", ArticleVisibleFilter{Now: now, IDs: []uint{a1.ID, a3.ID}}, []uint{a3.ID, a1.ID}},
		{"search", ArticleVisibleFilter{Now: now, Search: "বিশেষ"}, []uint{a3.ID}},
		{"limit offset", ArticleVisibleFilter{Now: now, Limit: 1, Offset: 1}, []uint{a2.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindVisible(tc.filter)
			if err != nil {
				t.Fatalf("find visible failed: %v", err)
			}
			if !reflect.DeepEqual(articleIDs(got), tc.want) {
				t.Fatalf("ids want %v got %v", tc.want, articleIDs(got))
			}
		})
	}
}

func TestFindVisibleWithRelationsPreloadsSection(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	section := createTestSection(t, db, "জাতীয়", "national", 1, true)
	createTestArticle(t, db, &models.Article{SectionID: &section.ID, Title: "x"})

	got, err := repo.FindVisible(ArticleVisibleFilter{WithRelations: true})
	if err != nil {
		t.Fatalf("find visible failed: %v", err)
	}
	if len(got) != 1 || got[0].Section == nil || got[0].Section.EnglishTitle != "national" {
		t.Fatalf("section should be preloaded, got %+v", got)
	}
}

func TestIncrementViewAtomic(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	article := createTestArticle(t, db, &models.Article{Title: "viewed"})

	views, err := repo.CountViews(article.ID)
	if err != nil {
		t.Fatalf("count views failed: %v", err)
	}
	if views != 0 {
		t.Fatalf("initial views want 0 got %d", views)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViewAtomic(article.ID); err != nil {
			t.Fatalf("increment view failed: %v", err)
		}
	}
	views, err = repo.CountViews(article.ID)
	if err != nil {
		t.Fatalf("count views failed: %v", err)
	}
	if views != 3 {
		t.Fatalf("views want 3 got %d", views)
	}

	var rows int64
	db.Model(&models.ArticleView{}).Where("article_id = ?", article.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("view rows want 1 got %d", rows)
	}
}

func TestMostViewedSkipsScheduled(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	low := createTestArticle(t, db, &models.Article{Title: "low", CreatedAt: now.Add(-2 * time.Hour)})
	high := createTestArticle(t, db, &models.Article{Title: "high", CreatedAt: now.Add(-time.Hour)})
	hidden := createTestArticle(t, db, &models.Article{Title: "hidden", ScheduledPublishAt: timePtr(now.Add(time.Hour))})
	mustCreate(t, db, &models.ArticleView{ArticleID: low.ID, ViewCount: 2})
	mustCreate(t, db, &models.ArticleView{ArticleID: high.ID, ViewCount: 9})
	mustCreate(t, db, &models.ArticleView{ArticleID: hidden.ID, ViewCount: 50})

	got, err := repo.MostViewed(MostViewedFilter{Now: now, Limit: 5})
	if err != nil {
		t.Fatalf("most viewed failed: %v", err)
	}
	if want := []uint{high.ID, low.ID}; !reflect.DeepEqual(articleIDs(got), want) {
		t.Fatalf("most viewed want %v got %v", want, articleIDs(got))
	}

	got, err = repo.MostViewed(MostViewedFilter{Now: now, Limit: 5, CreatedSince: timePtr(now.Add(-90 * time.Minute))})
	if err != nil {
		t.Fatalf("most viewed failed: %v", err)
	}
	if want := []uint{high.ID}; !reflect.DeepEqual(articleIDs(got), want) {
		t.Fatalf("most viewed since want %v got %v", want, articleIDs(got))
	}
}

func TestUpdateKeepsCreatedAtAndReplacesCategories(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	first := &models.Category{Name: "first"}
	second := &models.Category{Name: "second"}
	mustCreate(t, db, first)
	mustCreate(t, db, second)

	createdAt := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	creator := uintPtr(7)
	article := createTestArticle(t, db, &models.Article{
		Title: "old", CreatedAt: createdAt, CreatedByID: creator,
		Categories: []models.Category{*first},
	})

	article.Title = "new"
	article.CreatedAt = time.Now().UTC()
	article.CreatedByID = uintPtr(99)
	article.Categories = []models.Category{*second}
	if err := repo.Update(article); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reloaded, err := repo.GetByID(article.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Title != "new" {
		t.Fatalf("title want new got %s", reloaded.Title)
	}
	if !reloaded.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at want %v got %v", createdAt, reloaded.CreatedAt)
	}
	if reloaded.CreatedByID == nil || *reloaded.CreatedByID != 7 {
		t.Fatalf("created_by_id should stay 7, got %v", reloaded.CreatedByID)
	}
	if ids := reloaded.CategoryIDs(); !reflect.DeepEqual(ids, []uint{second.ID}) {
		t.Fatalf("categories want [%d] got %v", second.ID, ids)
	}
}

func TestDeleteCascadesDependents(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	tag := &models.Tag{Name: "t", Slug: "t"}
	mustCreate(t, db, tag)
	article := createTestArticle(t, db, &models.Article{Title: "gone", Tags: []models.Tag{*tag}})
	title := &models.SpecialTitle{Title: "নির্বাচন", IsActive: true}
	mustCreate(t, db, title)

	mustCreate(t, db, &models.ArticleView{ArticleID: article.ID, ViewCount: 3})
	mustCreate(t, db, &models.ArticleReaction{ArticleID: article.ID, VisitorKey: "v1", Reaction: "love"})
	mustCreate(t, db, &models.Review{ArticleID: article.ID, Comment: "ভালো"})
	mustCreate(t, db, &models.ArticleSeo{ArticleID: article.ID})
	mustCreate(t, db, &models.SpecialArticle{SpecialTitleID: title.ID, ArticleID: article.ID})

	if err := repo.Delete(article.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err := repo.GetByID(article.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("article should be deleted")
	}
	for _, model := range []interface{}{&models.ArticleView{}, &models.ArticleReaction{}, &models.Review{}, &models.ArticleSeo{}, &models.SpecialArticle{}} {
		var count int64
		db.Model(model).Where("article_id = ?", article.ID).Count(&count)
		if count != 0 {
			t.Fatalf("%T rows want 0 got %d", model, count)
		}
	}
	var links int64
	db.Table("article_tags").Where("article_id = ?", article.ID).Count(&links)
	if links != 0 {
		t.Fatalf("tag links want 0 got %d", links)
	}
}

func TestListAdminStatusFilter(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	createTestArticle(t, db, &models.Article{Title: "live", CreatedAt: now.Add(-time.Hour)})
	future := createTestArticle(t, db, &models.Article{Title: "future", ScheduledPublishAt: timePtr(now.Add(time.Hour))})

	items, total, err := repo.ListAdmin(ArticleAdminFilter{Page: 1, PageSize: 10, Now: now})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("admin list should include scheduled, total %d len %d", total, len(items))
	}

	items, total, err = repo.ListAdmin(ArticleAdminFilter{Page: 1, PageSize: 10, Now: now, Status: "scheduled"})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || items[0].ID != future.ID {
		t.Fatalf("scheduled filter want [%d] got %v", future.ID, articleIDs(items))
	}
}

func TestListScheduledBetween(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	due := createTestArticle(t, db, &models.Article{Title: "due", ScheduledPublishAt: timePtr(now.Add(-time.Minute))})
	createTestArticle(t, db, &models.Article{Title: "old", ScheduledPublishAt: timePtr(now.Add(-time.Hour))})
	createTestArticle(t, db, &models.Article{Title: "later", ScheduledPublishAt: timePtr(now.Add(time.Hour))})

	got, err := repo.ListScheduledBetween(now.Add(-5*time.Minute), now)
	if err != nil {
		t.Fatalf("list scheduled failed: %v", err)
	}
	if want := []uint{due.ID}; !reflect.DeepEqual(articleIDs(got), want) {
		t.Fatalf("due articles want %v got %v", want, articleIDs(got))
	}
}

func TestTagsLastModifiedUsesVisibleArticles(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	election := &models.Tag{Name: "নির্বাচন", Slug: "election"}
	budget := &models.Tag{Name: "বাজেট", Slug: "budget"}
	unused := &models.Tag{Name: "খালি", Slug: "unused"}
	mustCreate(t, db, election)
	mustCreate(t, db, budget)
	mustCreate(t, db, unused)

	older := now.Add(-48 * time.Hour)
	newer := now.Add(-2 * time.Hour)
	createTestArticle(t, db, &models.Article{Title: "old", CreatedAt: older, UpdatedAt: older, Tags: []models.Tag{{ID: election.ID}}})
	createTestArticle(t, db, &models.Article{Title: "new", CreatedAt: older, UpdatedAt: newer, Tags: []models.Tag{{ID: election.ID}}})
	createTestArticle(t, db, &models.Article{
		Title:              "scheduled",
		UpdatedAt:          now,
		ScheduledPublishAt: timePtr(now.Add(time.Hour)),
		Tags:               []models.Tag{{ID: budget.ID}},
	})

	latest, err := repo.TagsLastModified(now)
	if err != nil {
		t.Fatalf("tags last modified failed: %v", err)
	}
	if len(latest) != 1 {
		t.Fatalf("only the tag with visible articles should be listed, got %+v", latest)
	}
	if got := latest[election.ID]; !got.Equal(newer) {
		t.Fatalf("election lastmod want %v got %v", newer, got)
	}
}

func TestCategoriesLastModified(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewArticleRepository(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	live := &models.Category{Name: "লাইভ"}
	mustCreate(t, db, live)
	updated := now.Add(-time.Hour)
	createTestArticle(t, db, &models.Article{Title: "live", CreatedAt: updated, UpdatedAt: updated, Categories: []models.Category{{ID: live.ID}}})

	latest, err := repo.CategoriesLastModified(now)
	if err != nil {
		t.Fatalf("categories last modified failed: %v", err)
	}
	if got, ok := latest[live.ID]; !ok || !got.Equal(updated) {
		t.Fatalf("live lastmod want %v got %+v", updated, latest)
	}
}
