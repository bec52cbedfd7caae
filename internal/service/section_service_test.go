package service

import (
	"errors"
	"testing"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

func TestNavListsActiveSectionsWithPaths(t *testing.T) {
	useMiniredisCache(t)
	db := openServiceTestDB(t)
	sports := seedSection(t, db, "খেলা", "Sports News", 2)
	national := seedSection(t, db, "জাতীয়", "national", 1)
	seedSubsection(t, db, sports, "ক্রিকেট", "Cricket", true)
	seedSubsection(t, db, sports, "হকি", "hockey", false)
	hidden := seedSection(t, db, "আর্কাইভ", "archive", 3)
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate section failed: %v", err)
	}

	svc := NewSectionService(repository.NewSectionRepository(db), nil, config.ContentConfig{NavCacheTTLSeconds: 60})
	items, err := svc.Nav()
	if err != nil {
		t.Fatalf("nav failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != national.ID || items[1].ID != sports.ID {
		t.Fatalf("nav want national then sports, got %+v", items)
	}
	if items[1].Path != "/sports-news/" {
		t.Fatalf("section path want /sports-news/ got %s", items[1].Path)
	}
	if len(items[1].Subsections) != 1 || items[1].Subsections[0].Path != "/sports-news/cricket/" {
		t.Fatalf("nav should list only the active subsection, got %+v", items[1].Subsections)
	}

	if err := db.Model(&models.Section{}).Where("id = ?", national.ID).Update("title", "renamed").Error; err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	cached, err := svc.Nav()
	if err != nil {
		t.Fatalf("nav failed: %v", err)
	}
	if cached[0].Title != "জাতীয়" {
		t.Fatalf("second nav call should come from cache, got %s", cached[0].Title)
	}
}

func TestSectionSlugRules(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewSectionService(repository.NewSectionRepository(db), nil, config.ContentConfig{})

	if _, err := svc.CreateSection(SectionInput{Title: "জাতীয়", EnglishTitle: "National"}); err != nil {
		t.Fatalf("create section failed: %v", err)
	}
	if _, err := svc.CreateSection(SectionInput{Title: "দেশ", EnglishTitle: "national"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists, got %v", err)
	}
	if _, err := svc.CreateSection(SectionInput{Title: "সংবাদ", EnglishTitle: "news"}); !errors.Is(err, ErrSlugReserved) {
		t.Fatalf("reserved slug want ErrSlugReserved, got %v", err)
	}
	if _, err := svc.CreateSection(SectionInput{Title: "মতামত"}); err != nil {
		t.Fatalf("section without english title should be allowed: %v", err)
	}
	if _, err := svc.CreateSection(SectionInput{EnglishTitle: "empty"}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("missing title want ErrTitleRequired, got %v", err)
	}
}

func TestSubsectionRules(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewSectionService(repository.NewSectionRepository(db), nil, config.ContentConfig{})
	sports := seedSection(t, db, "খেলা", "sports", 1)
	world := seedSection(t, db, "বিশ্ব", "world", 2)

	if _, err := svc.CreateSubsection(SubsectionInput{Title: "orphan"}); !errors.Is(err, ErrSectionRequired) {
		t.Fatalf("missing section want ErrSectionRequired, got %v", err)
	}
	cricket, err := svc.CreateSubsection(SubsectionInput{SectionID: sports.ID, Title: "ক্রিকেট", EnglishTitle: "cricket"})
	if err != nil {
		t.Fatalf("create subsection failed: %v", err)
	}
	if _, err := svc.CreateSubsection(SubsectionInput{SectionID: sports.ID, Title: "ক্রিকেট ২", EnglishTitle: "Cricket"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate sibling slug want ErrSlugExists, got %v", err)
	}
	if _, err := svc.CreateSubsection(SubsectionInput{SectionID: world.ID, Title: "ক্রিকেট", EnglishTitle: "cricket"}); err != nil {
		t.Fatalf("same slug under another section should be allowed: %v", err)
	}

	seedArticle(t, db, &models.Article{SectionID: &sports.ID, SubsectionID: &cricket.ID, Title: "match", CreatedAt: time.Now().UTC()})
	if _, err := svc.UpdateSubsection(cricket.ID, SubsectionInput{SectionID: world.ID, Title: "ক্রিকেট"}); !errors.Is(err, ErrSubsectionInUse) {
		t.Fatalf("moving a used subsection want ErrSubsectionInUse, got %v", err)
	}
	if err := svc.DeleteSubsection(cricket.ID); !errors.Is(err, ErrSubsectionInUse) {
		t.Fatalf("deleting a used subsection want ErrSubsectionInUse, got %v", err)
	}
	if err := svc.DeleteSection(sports.ID); !errors.Is(err, ErrSectionInUse) {
		t.Fatalf("deleting a used section want ErrSectionInUse, got %v", err)
	}
	if err := svc.DeleteSection(world.ID); err != nil {
		t.Fatalf("deleting an empty section failed: %v", err)
	}
	if err := svc.DeleteSection(world.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting twice want ErrNotFound, got %v", err)
	}
}
