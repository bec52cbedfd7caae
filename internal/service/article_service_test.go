package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jagoron-news/internal/cache"
	"github.com/jagoron-news/internal/models"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 10, []int{1, 2, 3, 4, 5, 6, 7}},
		{4, 10, []int{1, 2, 3, 4, 5, 6, 7}},
		{5, 10, []int{2, 3, 4, 5, 6, 7, 8}},
		{10, 10, []int{4, 5, 6, 7, 8, 9, 10}},
		{8, 10, []int{4, 5, 6, 7, 8, 9, 10}},
		{2, 3, []int{1, 2, 3}},
		{99, 3, []int{1, 2, 3}},
		{1, 0, []int{}},
	}
	for _, tc := range cases {
		if got := PageWindow(tc.current, tc.total); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("PageWindow(%d, %d) want %v got %v", tc.current, tc.total, tc.want, got)
		}
	}
}

func TestListingPaginatesVisibleSectionArticles(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	for i := 0; i < 25; i++ {
		seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Duration(i+1) * time.Minute)})
	}
	future := now.Add(time.Hour)
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "embargoed", ScheduledPublishAt: &future})

	svc := newArticleServiceForTest(db, now)
	res := &Resolution{Kind: ResolutionSection, Section: section}

	first, err := svc.Listing(res, ListingQuery{Page: 1})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if first.Total != 25 || first.TotalPages != 2 || len(first.Articles) != 20 {
		t.Fatalf("page 1 want total=25 pages=2 len=20, got total=%d pages=%d len=%d", first.Total, first.TotalPages, len(first.Articles))
	}
	clamped, err := svc.Listing(res, ListingQuery{Page: 99})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if clamped.Page != 2 || len(clamped.Articles) != 5 {
		t.Fatalf("out of range page want clamp to 2 with 5 rows, got page=%d len=%d", clamped.Page, len(clamped.Articles))
	}
	for _, article := range append(first.Articles, clamped.Articles...) {
		if article.Title == "embargoed" {
			t.Fatalf("scheduled article leaked into listing")
		}
	}
}

func TestListingUnknownTagIsEmpty(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})

	svc := newArticleServiceForTest(db, now)
	page, err := svc.Listing(&Resolution{Kind: ResolutionSection, Section: section}, ListingQuery{Page: 1, Tag: "missing"})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(page.Articles) != 0 || page.Total != 0 {
		t.Fatalf("unknown tag want empty page, got %d rows", len(page.Articles))
	}

	if _, err := svc.ListByTag("missing", 1); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("tag listing want ErrTagNotFound, got %v", err)
	}
}

func TestListingFiltersByTag(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	tag := &models.Tag{Name: "Election", Slug: "election"}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	tagged := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "tagged", CreatedAt: now.Add(-time.Hour), Tags: []models.Tag{*tag}})
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "plain", CreatedAt: now.Add(-time.Hour)})

	svc := newArticleServiceForTest(db, now)
	page, err := svc.Listing(&Resolution{Kind: ResolutionSection, Section: section}, ListingQuery{Page: 1, Tag: "election"})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if got := idsOf(page.Articles); !reflect.DeepEqual(got, []uint{tagged.ID}) {
		t.Fatalf("tag listing want [%d] got %v", tagged.ID, got)
	}
	if page.Tag == nil || page.Tag.Slug != "election" {
		t.Fatalf("tag listing should echo the tag")
	}
}

func TestListingFiltersByCategoryName(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	live := seedCategory(t, db, "লাইভ")
	tagged := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "live", CreatedAt: now.Add(-time.Hour), Categories: []models.Category{{ID: live.ID}}})
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "plain", CreatedAt: now.Add(-time.Hour)})

	svc := newArticleServiceForTest(db, now)
	page, err := svc.Listing(&Resolution{Kind: ResolutionAllNews}, ListingQuery{Category: "লাইভ"})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if got := idsOf(page.Articles); !reflect.DeepEqual(got, []uint{tagged.ID}) {
		t.Fatalf("category listing want [%d] got %v", tagged.ID, got)
	}
	missing, err := svc.Listing(&Resolution{Kind: ResolutionAllNews}, ListingQuery{Category: "নেই"})
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if missing.Total != 0 {
		t.Fatalf("unknown category want empty page, got %d rows", missing.Total)
	}
}

func TestSearchMatchesVisibleTitles(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	hit := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "budget passed", CreatedAt: now.Add(-time.Hour)})
	future := now.Add(time.Hour)
	seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "budget leak", ScheduledPublishAt: &future})

	svc := newArticleServiceForTest(db, now)
	page, err := svc.Search("budget", 1)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := idsOf(page.Articles); !reflect.DeepEqual(got, []uint{hit.ID}) {
		t.Fatalf("search want [%d] got %v", hit.ID, got)
	}
	empty, err := svc.Search("   ", 1)
	if err != nil || len(empty.Articles) != 0 {
		t.Fatalf("blank search want empty page, got %v %v", empty, err)
	}
}

func TestCreateRejectsForeignSubsection(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	national := seedSection(t, db, "জাতীয়", "national", 1)
	sports := seedSection(t, db, "খেলা", "sports", 2)
	cricket := seedSubsection(t, db, sports, "ক্রিকেট", "cricket", true)

	svc := newArticleServiceForTest(db, now)
	_, err := svc.Create(ArticleInput{Title: "mismatch", SectionID: &national.ID, SubsectionID: &cricket.ID}, 1)
	if !errors.Is(err, ErrSubsectionSectionMismatch) {
		t.Fatalf("want ErrSubsectionSectionMismatch, got %v", err)
	}
	if _, err := svc.Create(ArticleInput{Title: "no section"}, 1); !errors.Is(err, ErrArticleSectionRequired) {
		t.Fatalf("want ErrArticleSectionRequired, got %v", err)
	}
	if _, err := svc.Create(ArticleInput{SectionID: &national.ID}, 1); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("want ErrTitleRequired, got %v", err)
	}
	missing := uint(999)
	if _, err := svc.Create(ArticleInput{Title: "bad category", SectionID: &national.ID, CategoryIDs: []uint{missing}}, 1); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound, got %v", err)
	}

	created, err := svc.Create(ArticleInput{Title: "ok", SectionID: &sports.ID, SubsectionID: &cricket.ID}, 7)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CreatedByID == nil || *created.CreatedByID != 7 {
		t.Fatalf("create should record the author admin")
	}
}

func TestUpdateReplacesTaxonomy(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	first := &models.Category{Name: "first"}
	second := &models.Category{Name: "second"}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(second).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	svc := newArticleServiceForTest(db, now)
	article, err := svc.Create(ArticleInput{Title: "story", SectionID: &section.ID, CategoryIDs: []uint{first.ID}}, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	updated, err := svc.Update(article.ID, ArticleInput{Title: "story", SectionID: &section.ID, CategoryIDs: []uint{second.ID, second.ID}}, 2)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := updated.CategoryIDs(); !reflect.DeepEqual(got, []uint{second.ID}) {
		t.Fatalf("categories want [%d] got %v", second.ID, got)
	}
	if _, err := svc.Update(999, ArticleInput{Title: "x", SectionID: &section.ID}, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing want ErrNotFound, got %v", err)
	}
}

func TestDetailCountsReaderViewsOnly(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})

	svc := newArticleServiceForTest(db, now)
	res := &Resolution{Kind: ResolutionArticle, Article: article}
	if _, err := svc.Detail(res, false); err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	detail, err := svc.Detail(res, true)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.ViewCount != 1 {
		t.Fatalf("privileged preview must not count, want 1 got %d", detail.ViewCount)
	}
	if _, err := svc.Detail(&Resolution{Kind: ResolutionSection}, false); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("non-article resolution want ErrContentNotFound, got %v", err)
	}
}

func TestRelatedCacheReloadsThroughVisibility(t *testing.T) {
	useMiniredisCache(t)
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})
	visible := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "visible", CreatedAt: now.Add(-2 * time.Hour)})
	future := now.Add(time.Hour)
	scheduled := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "embargoed", ScheduledPublishAt: &future})

	if err := cache.SetRelatedIDs(context.Background(), article.ID, 4, []uint{scheduled.ID, visible.ID}, time.Minute); err != nil {
		t.Fatalf("seed related cache failed: %v", err)
	}
	svc := newArticleServiceForTest(db, now)
	related, err := svc.Related(article, 4)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	if got := idsOf(related); !reflect.DeepEqual(got, []uint{visible.ID}) {
		t.Fatalf("cached related want [%d] got %v", visible.ID, got)
	}
	ids, hit, err := cache.GetRelatedIDs(context.Background(), article.ID, 4)
	if err != nil || !hit || !reflect.DeepEqual(ids, []uint{visible.ID}) {
		t.Fatalf("stale cache should be replaced by ranked ids, got %v hit=%v err=%v", ids, hit, err)
	}
}

func TestRelatedCacheBackfillsDeletedArticles(t *testing.T) {
	useMiniredisCache(t)
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})
	first := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "first", CreatedAt: now.Add(-2 * time.Hour)})
	second := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "second", CreatedAt: now.Add(-3 * time.Hour)})

	svc := newArticleServiceForTest(db, now)
	if err := cache.SetRelatedIDs(context.Background(), article.ID, 2, []uint{first.ID, 9999}, time.Minute); err != nil {
		t.Fatalf("seed related cache failed: %v", err)
	}
	related, err := svc.Related(article, 2)
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	if got := idsOf(related); !reflect.DeepEqual(got, []uint{first.ID, second.ID}) {
		t.Fatalf("related want [%d %d] got %v", first.ID, second.ID, got)
	}
}

func TestRelatedCacheMissStoresIDs(t *testing.T) {
	useMiniredisCache(t)
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})
	sibling := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "sibling", CreatedAt: now.Add(-2 * time.Hour)})

	svc := newArticleServiceForTest(db, now)
	if _, err := svc.Related(article, 4); err != nil {
		t.Fatalf("related failed: %v", err)
	}
	ids, hit, err := cache.GetRelatedIDs(context.Background(), article.ID, 4)
	if err != nil || !hit {
		t.Fatalf("related ids should be cached, hit=%v err=%v", hit, err)
	}
	if !reflect.DeepEqual(ids, []uint{sibling.ID}) {
		t.Fatalf("cached ids want [%d] got %v", sibling.ID, ids)
	}
}

func TestHomeExcludesPinnedArticles(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	pinned := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "pinned", CreatedAt: now.Add(-time.Hour)})
	latest := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "latest", CreatedAt: now.Add(-2 * time.Hour)})
	title := &models.SpecialTitle{Title: "নির্বাচন", IsActive: true}
	if err := db.Create(title).Error; err != nil {
		t.Fatalf("create special title failed: %v", err)
	}
	if err := db.Create(&models.SpecialArticle{SpecialTitleID: title.ID, ArticleID: pinned.ID, MainNews: true}).Error; err != nil {
		t.Fatalf("create special article failed: %v", err)
	}

	svc := newArticleServiceForTest(db, now)
	feed, err := svc.Home()
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if got := idsOf(feed.Latest); !reflect.DeepEqual(got, []uint{latest.ID}) {
		t.Fatalf("latest want [%d] got %v", latest.ID, got)
	}
	if len(feed.Specials) != 1 || len(feed.Specials[0].Main) != 1 || feed.Specials[0].Main[0].ID != pinned.ID {
		t.Fatalf("special block should carry the pinned main article, got %+v", feed.Specials)
	}
}

func TestPublishDueIgnoresRescheduledTasks(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	past := now.Add(-time.Minute)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "due", ScheduledPublishAt: &past})

	svc := newArticleServiceForTest(db, now)
	published, err := svc.PublishDue(article.ID, past.Unix())
	if err != nil || !published {
		t.Fatalf("due article want published, got %v %v", published, err)
	}
	published, err = svc.PublishDue(article.ID, past.Add(-time.Hour).Unix())
	if err != nil || published {
		t.Fatalf("stale schedule want skipped, got %v %v", published, err)
	}
	published, err = svc.PublishDue(999, 0)
	if err != nil || published {
		t.Fatalf("missing article want skipped, got %v %v", published, err)
	}

	count, until, err := svc.SweepPublished(now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if count != 1 || !until.Equal(now) {
		t.Fatalf("sweep want 1 until %v, got %d until %v", now, count, until)
	}
}

func TestHomePanelsFollowConfiguredCategories(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	hot := seedCategory(t, db, testPanelCategories.HotTopic)
	live := seedCategory(t, db, testPanelCategories.Live)
	elected := seedCategory(t, db, testPanelCategories.Elected)

	pinned := seedArticle(t, db, &models.Article{
		SectionID:  &section.ID,
		Title:      "pinned hot",
		CreatedAt:  now.Add(-30 * time.Minute),
		Categories: []models.Category{{ID: hot.ID}},
	})
	hotArticles := make([]*models.Article, 0, 6)
	for i := 1; i <= 6; i++ {
		categories := []models.Category{{ID: hot.ID}}
		if i == 1 {
			categories = append(categories, models.Category{ID: live.ID})
		}
		hotArticles = append(hotArticles, seedArticle(t, db, &models.Article{
			SectionID:  &section.ID,
			Title:      "hot",
			CreatedAt:  now.Add(-time.Duration(i) * time.Hour),
			Categories: categories,
		}))
	}
	electedArticles := make([]*models.Article, 0, 6)
	for i := 7; i <= 12; i++ {
		electedArticles = append(electedArticles, seedArticle(t, db, &models.Article{
			SectionID:  &section.ID,
			Title:      "elected",
			CreatedAt:  now.Add(-time.Duration(i) * time.Hour),
			Categories: []models.Category{{ID: elected.ID}},
		}))
	}
	title := &models.SpecialTitle{Title: "বিশেষ", IsActive: true}
	if err := db.Create(title).Error; err != nil {
		t.Fatalf("create special title failed: %v", err)
	}
	if err := db.Create(&models.SpecialArticle{SpecialTitleID: title.ID, ArticleID: pinned.ID, MainNews: true}).Error; err != nil {
		t.Fatalf("create special article failed: %v", err)
	}

	feed, err := newArticleServiceForTest(db, now).Home()
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	panels := feed.Panels
	if panels.Lead == nil || panels.Lead.ID != hotArticles[0].ID {
		t.Fatalf("lead want %d got %+v", hotArticles[0].ID, panels.Lead)
	}
	wantHero := []uint{hotArticles[1].ID, hotArticles[2].ID, hotArticles[3].ID, hotArticles[4].ID}
	if got := idsOf(panels.Hero); !reflect.DeepEqual(got, wantHero) {
		t.Fatalf("hero want %v got %v", wantHero, got)
	}
	if panels.Live == nil || panels.Live.ID != hotArticles[0].ID {
		t.Fatalf("live should mirror the lead when it is live, got %+v", panels.Live)
	}
	wantSecondary := []uint{hotArticles[5].ID, electedArticles[0].ID, electedArticles[1].ID, electedArticles[2].ID}
	if got := idsOf(panels.Secondary); !reflect.DeepEqual(got, wantSecondary) {
		t.Fatalf("secondary want %v got %v", wantSecondary, got)
	}
	if panels.ElectedLead == nil || panels.ElectedLead.ID != electedArticles[0].ID {
		t.Fatalf("elected lead want %d got %+v", electedArticles[0].ID, panels.ElectedLead)
	}
	wantElected := []uint{electedArticles[1].ID, electedArticles[2].ID, electedArticles[3].ID, electedArticles[4].ID}
	if got := idsOf(panels.Elected); !reflect.DeepEqual(got, wantElected) {
		t.Fatalf("elected want %v got %v", wantElected, got)
	}
}

func TestHomeLiveOnlyWhenLeadIsLive(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	hot := seedCategory(t, db, testPanelCategories.HotTopic)
	live := seedCategory(t, db, testPanelCategories.Live)
	lead := seedArticle(t, db, &models.Article{Title: "hot", CreatedAt: now.Add(-2 * time.Hour), Categories: []models.Category{{ID: hot.ID}}})
	seedArticle(t, db, &models.Article{Title: "live", CreatedAt: now.Add(-time.Hour), Categories: []models.Category{{ID: live.ID}}})

	feed, err := newArticleServiceForTest(db, now).Home()
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if feed.Panels.Lead == nil || feed.Panels.Lead.ID != lead.ID {
		t.Fatalf("lead want %d got %+v", lead.ID, feed.Panels.Lead)
	}
	if feed.Panels.Live != nil {
		t.Fatalf("live must stay empty when the lead is not live, got %+v", feed.Panels.Live)
	}
}

func TestDetailPanelsStayInSection(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	national := seedSection(t, db, "জাতীয়", "national", 1)
	sports := seedSection(t, db, "খেলা", "sports", 2)
	mainNews := seedCategory(t, db, testPanelCategories.MainNews)
	elected := seedCategory(t, db, testPanelCategories.Elected)

	article := seedArticle(t, db, &models.Article{
		SectionID:  &national.ID,
		Title:      "current",
		CreatedAt:  now.Add(-10 * time.Minute),
		Categories: []models.Category{{ID: mainNews.ID}, {ID: elected.ID}},
	})
	mainIDs := make([]uint, 0, 4)
	for i := 1; i <= 4; i++ {
		row := seedArticle(t, db, &models.Article{
			SectionID:  &national.ID,
			Title:      "main",
			CreatedAt:  now.Add(-time.Duration(i) * time.Hour),
			Categories: []models.Category{{ID: mainNews.ID}},
		})
		mainIDs = append(mainIDs, row.ID)
	}
	seedArticle(t, db, &models.Article{
		SectionID:  &sports.ID,
		Title:      "other section",
		CreatedAt:  now.Add(-time.Minute),
		Categories: []models.Category{{ID: mainNews.ID}, {ID: elected.ID}},
	})
	future := now.Add(time.Hour)
	seedArticle(t, db, &models.Article{
		SectionID:          &national.ID,
		Title:              "scheduled",
		CreatedAt:          now.Add(-time.Minute),
		ScheduledPublishAt: &future,
		Categories:         []models.Category{{ID: elected.ID}},
	})
	electedRow := seedArticle(t, db, &models.Article{
		SectionID:  &national.ID,
		Title:      "elected",
		CreatedAt:  now.Add(-5 * time.Hour),
		Categories: []models.Category{{ID: elected.ID}},
	})

	detail, err := newArticleServiceForTest(db, now).Detail(&Resolution{Kind: ResolutionArticle, Article: article}, true)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if got := idsOf(detail.MainNews); !reflect.DeepEqual(got, mainIDs[:3]) {
		t.Fatalf("main news want %v got %v", mainIDs[:3], got)
	}
	if got := idsOf(detail.Elected); !reflect.DeepEqual(got, []uint{electedRow.ID}) {
		t.Fatalf("elected want [%d] got %v", electedRow.ID, got)
	}
}
