package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

func TestReactionSummaryPercentages(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})
	svc := NewReactionService(repository.NewReactionRepository(db), repository.NewArticleRepository(db), fixedClock(now))

	if _, err := svc.React(article.ID, "v1", "love"); err != nil {
		t.Fatalf("react failed: %v", err)
	}
	if _, err := svc.React(article.ID, "v2", "love"); err != nil {
		t.Fatalf("react failed: %v", err)
	}
	if _, err := svc.React(article.ID, "v3", "clap"); err != nil {
		t.Fatalf("react failed: %v", err)
	}
	// v1 changes its mind; still one reaction per visitor
	summary, err := svc.React(article.ID, "v1", "SAD")
	if err != nil {
		t.Fatalf("react failed: %v", err)
	}
	if summary.Total != 3 || summary.Mine != "sad" {
		t.Fatalf("summary want total=3 mine=sad, got total=%d mine=%s", summary.Total, summary.Mine)
	}
	want := map[string]string{"love": "33.33", "clap": "33.33", "smile": "0.00", "sad": "33.33"}
	if len(summary.Reactions) != len(constants.ReactionKinds) {
		t.Fatalf("summary should list every kind, got %d", len(summary.Reactions))
	}
	for i, share := range summary.Reactions {
		if share.Reaction != constants.ReactionKinds[i] {
			t.Fatalf("reaction order want %s got %s", constants.ReactionKinds[i], share.Reaction)
		}
		if share.Percent != want[share.Reaction] {
			t.Fatalf("%s percent want %s got %s", share.Reaction, want[share.Reaction], share.Percent)
		}
	}

	if _, err := svc.React(article.ID, "v4", "angry"); !errors.Is(err, ErrInvalidReaction) {
		t.Fatalf("unknown reaction want ErrInvalidReaction, got %v", err)
	}
	future := now.Add(time.Hour)
	hidden := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "embargoed", ScheduledPublishAt: &future})
	if _, err := svc.React(hidden.ID, "v1", "love"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("scheduled article want ErrContentNotFound, got %v", err)
	}
}

func TestReviewSubmitValidation(t *testing.T) {
	db := openServiceTestDB(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: now.Add(-time.Hour)})
	svc := NewReviewService(repository.NewReviewRepository(db), repository.NewArticleRepository(db), nil, fixedClock(now))

	if _, err := svc.Submit(SubmitReviewInput{ArticleID: article.ID, Comment: "  "}); !errors.Is(err, ErrReviewCommentRequired) {
		t.Fatalf("blank comment want ErrReviewCommentRequired, got %v", err)
	}
	long := strings.Repeat("অ", constants.ReviewCommentMaxRunes+1)
	if _, err := svc.Submit(SubmitReviewInput{ArticleID: article.ID, Comment: long}); !errors.Is(err, ErrReviewCommentTooLong) {
		t.Fatalf("long comment want ErrReviewCommentTooLong, got %v", err)
	}
	if _, err := svc.Submit(SubmitReviewInput{ArticleID: 999, Comment: "hello"}); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("missing article want ErrContentNotFound, got %v", err)
	}

	review, err := svc.Submit(SubmitReviewInput{ArticleID: article.ID, Name: strings.Repeat("n", 150), Comment: "ভালো লেখা"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len([]rune(review.Name)) != 100 {
		t.Fatalf("name should be truncated to 100 runes, got %d", len([]rune(review.Name)))
	}
	rows, total, err := svc.ListForArticle(article.ID, 1, 20)
	if err != nil || total != 1 || len(rows) != 1 {
		t.Fatalf("list want 1 review, got %d/%d err=%v", len(rows), total, err)
	}
	if err := svc.Delete(review.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(review.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice want ErrNotFound, got %v", err)
	}
}

func TestCaptchaVerifyIgnoresCaseAndConsumesAnswer(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge should carry id and image")
	}
	answer := svc.imageStore().Get(challenge.CaptchaID, false)
	if answer == "" {
		t.Fatalf("answer should be stored")
	}

	if err := svc.Verify(constants.CaptchaSceneReview, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("empty payload want ErrCaptchaRequired, got %v", err)
	}
	payload := CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: strings.ToUpper(answer)}
	if err := svc.Verify(constants.CaptchaSceneReview, payload); err != nil {
		t.Fatalf("upper-case answer should pass, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneReview, payload); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("answer is single use, got %v", err)
	}

	disabled := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	if err := disabled.Verify(constants.CaptchaSceneReview, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
}

func TestShortURLReuseAndFollow(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewShortURLService(repository.NewShortURLRepository(db))

	first, err := svc.Shorten("https://jagoronnews.com/national/42/")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}
	if len(first.ShortCode) != constants.ShortCodeLength {
		t.Fatalf("code length want %d got %d", constants.ShortCodeLength, len(first.ShortCode))
	}
	again, err := svc.Shorten("https://jagoronnews.com/national/42/")
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}
	if again.ID != first.ID || again.ShortCode != first.ShortCode {
		t.Fatalf("same url should reuse the code")
	}
	for _, bad := range []string{"", "ftp://example.com/x", "//evil.example", "javascript:alert(1)"} {
		if _, err := svc.Shorten(bad); !errors.Is(err, ErrInvalidShortURL) {
			t.Fatalf("%q want ErrInvalidShortURL, got %v", bad, err)
		}
	}

	for i := 0; i < 2; i++ {
		target, err := svc.Follow(first.ShortCode)
		if err != nil || target != first.OriginalURL {
			t.Fatalf("follow want %s got %s err=%v", first.OriginalURL, target, err)
		}
	}
	var stored models.ShortURL
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Clicks != 2 {
		t.Fatalf("clicks want 2 got %d", stored.Clicks)
	}
	if _, err := svc.Follow("nope00"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("unknown code want ErrContentNotFound, got %v", err)
	}
}
