package repository

import (
	"testing"

	"github.com/jagoron-news/internal/models"
)

func TestListSectionsOrderAndActiveFilter(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewSectionRepository(db)
	second := createTestSection(t, db, "আন্তর্জাতিক", "international", 2, true)
	first := createTestSection(t, db, "জাতীয়", "national", 1, true)
	createTestSection(t, db, "পুরনো", "archive", 0, false)

	mustCreate(t, db, &models.Subsection{SectionID: &first.ID, Title: "ঢাকা", EnglishTitle: "dhaka", Position: 2, IsActive: true})
	mustCreate(t, db, &models.Subsection{SectionID: &first.ID, Title: "চট্টগ্রাম", EnglishTitle: "chattogram", Position: 1, IsActive: true})
	mustCreate(t, db, &models.Subsection{SectionID: &first.ID, Title: "বন্ধ", EnglishTitle: "closed", Position: 0, IsActive: false})

	all, err := repo.ListSections(SectionListFilter{})
	if err != nil {
		t.Fatalf("list sections failed: %v", err)
	}
	if len(all) != 3 || all[0].EnglishTitle != "archive" {
		t.Fatalf("all sections should be ordered by position, got %+v", all)
	}

	active, err := repo.ListSections(SectionListFilter{ActiveOnly: true, WithSubsections: true})
	if err != nil {
		t.Fatalf("list active sections failed: %v", err)
	}
	if len(active) != 2 || active[0].ID != first.ID || active[1].ID != second.ID {
		t.Fatalf("active sections order mismatch: %+v", active)
	}
	subs := active[0].Subsections
	if len(subs) != 2 || subs[0].EnglishTitle != "chattogram" || subs[1].EnglishTitle != "dhaka" {
		t.Fatalf("active subsections mismatch: %+v", subs)
	}

	listed, err := repo.ListSubsections(first.ID, false)
	if err != nil {
		t.Fatalf("list subsections failed: %v", err)
	}
	if len(listed) != 3 || listed[0].EnglishTitle != "closed" {
		t.Fatalf("subsections should include inactive, got %+v", listed)
	}
}

func TestGetSubsectionPreloadsSection(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewSectionRepository(db)
	section := createTestSection(t, db, "খেলা", "sports", 1, true)
	sub := &models.Subsection{SectionID: &section.ID, Title: "ফুটবল", EnglishTitle: "football", IsActive: true}
	mustCreate(t, db, sub)

	got, err := repo.GetSubsectionByID(sub.ID)
	if err != nil {
		t.Fatalf("get subsection failed: %v", err)
	}
	if got == nil || got.Section == nil || got.Section.ID != section.ID {
		t.Fatalf("section should be preloaded, got %+v", got)
	}

	missing, err := repo.GetSubsectionByID(sub.ID + 100)
	if err != nil || missing != nil {
		t.Fatalf("missing subsection want nil,nil got %v,%v", missing, err)
	}
}

func TestDeleteSectionRemovesSubsections(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewSectionRepository(db)
	section := createTestSection(t, db, "খেলা", "sports", 1, true)
	sub := &models.Subsection{SectionID: &section.ID, Title: "ফুটবল", EnglishTitle: "football", IsActive: true}
	mustCreate(t, db, sub)
	mustCreate(t, db, &models.SubsectionSeo{SubsectionID: sub.ID})
	mustCreate(t, db, &models.SectionSeo{SectionID: section.ID})

	if err := repo.DeleteSection(section.ID); err != nil {
		t.Fatalf("delete section failed: %v", err)
	}
	for _, model := range []interface{}{&models.Section{}, &models.Subsection{}, &models.SectionSeo{}, &models.SubsectionSeo{}} {
		var count int64
		db.Model(model).Count(&count)
		if count != 0 {
			t.Fatalf("%T rows want 0 got %d", model, count)
		}
	}
}

func TestCountSectionArticles(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewSectionRepository(db)
	section := createTestSection(t, db, "খেলা", "sports", 1, true)
	createTestArticle(t, db, &models.Article{SectionID: &section.ID, Title: "x"})

	count, err := repo.CountSectionArticles(section.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}
}
