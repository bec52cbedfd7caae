package service

import (
	"errors"
	"testing"
	"time"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

func TestExtractYoutubeID(t *testing.T) {
	cases := []struct {
		link string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?t=30", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=abc", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://example.com/video.mp4", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractYoutubeID(tc.link)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ExtractYoutubeID(%q) want %q,%v got %q,%v", tc.link, tc.want, tc.ok, got, ok)
		}
	}
}

func TestVideoSaveStoresEmbedLink(t *testing.T) {
	db := openServiceTestDB(t)
	section := seedSection(t, db, "ভিডিও", "video", 1)
	svc := NewVideoService(repository.NewVideoRepository(db), repository.NewSectionRepository(db))

	video, err := svc.Save(0, VideoInput{SectionID: &section.ID, VideoTitle: " clip ", YoutubeLink: "https://youtu.be/dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("save video failed: %v", err)
	}
	if video.YoutubeLink != "https://www.youtube.com/embed/dQw4w9WgXcQ" || video.VideoID != "dQw4w9WgXcQ" || video.VideoTitle != "clip" {
		t.Fatalf("video mismatch: %+v", video)
	}
	if _, err := svc.Save(0, VideoInput{YoutubeLink: "https://vimeo.com/123"}); !errors.Is(err, ErrInvalidYoutubeLink) {
		t.Fatalf("non youtube link want ErrInvalidYoutubeLink, got %v", err)
	}
	missing := uint(999)
	if _, err := svc.Save(0, VideoInput{SectionID: &missing, YoutubeLink: "https://youtu.be/dQw4w9WgXcQ"}); !errors.Is(err, ErrSectionRequired) {
		t.Fatalf("unknown section want ErrSectionRequired, got %v", err)
	}

	rows, total, err := svc.List(1, &section.ID)
	if err != nil || total != 1 || len(rows) != 1 || rows[0].EmbedURL == "" {
		t.Fatalf("list want one video with embed url, got %d/%d err=%v", len(rows), total, err)
	}
}

func TestAuthorDirectory(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewAuthorService(repository.NewAuthorRepository(db))

	board, err := svc.SaveCategory(0, AuthorCategoryInput{Title: "Editorial Board"})
	if err != nil {
		t.Fatalf("save category failed: %v", err)
	}
	if board.Slug != "editorial-board" {
		t.Fatalf("category slug want editorial-board, got %s", board.Slug)
	}
	editor, err := svc.SaveRole(0, AuthorRoleInput{CategoryID: board.ID, Title: "Editor", Priority: 1})
	if err != nil {
		t.Fatalf("save role failed: %v", err)
	}
	if _, err := svc.SaveRole(0, AuthorRoleInput{CategoryID: 999, Title: "Ghost"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("role without category want ErrCategoryNotFound, got %v", err)
	}

	author, err := svc.SaveAuthor(0, AuthorInput{CategoryID: board.ID, RoleID: &editor.ID, Name: "Rahim Uddin"})
	if err != nil {
		t.Fatalf("save author failed: %v", err)
	}
	if author.Slug != "rahim-uddin" || !author.IsActive {
		t.Fatalf("author defaults mismatch: %+v", author)
	}
	if _, err := svc.SaveAuthor(0, AuthorInput{CategoryID: board.ID, Name: "Rahim Uddin"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists, got %v", err)
	}
	inactive := false
	if _, err := svc.SaveAuthor(0, AuthorInput{CategoryID: board.ID, RoleID: &editor.ID, Name: "Former", IsActive: &inactive}); err != nil {
		t.Fatalf("save inactive author failed: %v", err)
	}

	found, err := svc.GetBySlug("Rahim-Uddin")
	if err != nil || found.ID != author.ID {
		t.Fatalf("author by slug failed: %v", err)
	}
	if _, err := svc.GetBySlug("former"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("inactive author want ErrContentNotFound, got %v", err)
	}

	directory, err := svc.Directory()
	if err != nil {
		t.Fatalf("directory failed: %v", err)
	}
	if len(directory) != 1 || len(directory[0].Roles) != 1 || len(directory[0].Roles[0].Authors) != 1 {
		t.Fatalf("directory should list only the active author, got %+v", directory)
	}
}

func TestSpecialArticleNeedsExistingArticle(t *testing.T) {
	db := openServiceTestDB(t)
	section := seedSection(t, db, "জাতীয়", "national", 1)
	article := seedArticle(t, db, &models.Article{SectionID: &section.ID, Title: "story", CreatedAt: time.Now().UTC()})
	svc := NewSpecialService(repository.NewSpecialRepository(db), repository.NewArticleRepository(db), nil)

	title, err := svc.SaveTitle(0, SpecialTitleInput{Title: "নির্বাচন ২০২৬"})
	if err != nil {
		t.Fatalf("save title failed: %v", err)
	}
	if _, err := svc.SaveArticle(0, SpecialArticleInput{SpecialTitleID: title.ID}, 1); !errors.Is(err, ErrSpecialArticleRequired) {
		t.Fatalf("missing article want ErrSpecialArticleRequired, got %v", err)
	}
	if _, err := svc.SaveArticle(0, SpecialArticleInput{SpecialTitleID: title.ID, ArticleID: 999}, 1); !errors.Is(err, ErrSpecialArticleRequired) {
		t.Fatalf("unknown article want ErrSpecialArticleRequired, got %v", err)
	}
	row, err := svc.SaveArticle(0, SpecialArticleInput{SpecialTitleID: title.ID, ArticleID: article.ID, MainNews: true}, 3)
	if err != nil {
		t.Fatalf("pin article failed: %v", err)
	}
	if row.CreatedByID == nil || *row.CreatedByID != 3 {
		t.Fatalf("pinned row should record the admin")
	}
	rows, err := svc.ListArticles(title.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("list pinned want 1, got %d err=%v", len(rows), err)
	}
	if err := svc.DeleteTitle(title.ID); err != nil {
		t.Fatalf("delete title failed: %v", err)
	}
}
