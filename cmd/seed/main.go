package main

import (
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
)

type sectionSeed struct {
	Title        string
	EnglishTitle string
	Subsections  [][2]string
}

type articleSeed struct {
	Section     string
	Subsection  string
	Title       string
	SubTitle    string
	Content     string
	Reporter    string
	Categories  []string
	Tags        []string
	PublishedIn time.Duration
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	sections := []sectionSeed{
		{Title: "জাতীয়", EnglishTitle: "National", Subsections: [][2]string{{"রাজনীতি", "Politics"}, {"আইন-আদালত", "Law and Court"}}},
		{Title: "আন্তর্জাতিক", EnglishTitle: "International", Subsections: [][2]string{{"এশিয়া", "Asia"}}},
		{Title: "খেলা", EnglishTitle: "Sports", Subsections: [][2]string{{"ক্রিকেট", "Cricket"}, {"ফুটবল", "Football"}}},
		{Title: "বিনোদন", EnglishTitle: "Entertainment"},
		{Title: "মতামত", EnglishTitle: ""},
	}

	sectionIDs := map[string]uint{}
	subsectionIDs := map[string]uint{}
	for i, seed := range sections {
		section := models.Section{Title: seed.Title}
		if err := models.DB.Where("title = ?", seed.Title).
			Attrs(models.Section{EnglishTitle: seed.EnglishTitle, Position: i + 1, IsActive: true}).
			FirstOrCreate(&section).Error; err != nil {
			stdLog.Printf("Failed to seed section %s: %v", seed.Title, err)
			continue
		}
		sectionIDs[seed.EnglishTitle] = section.ID
		stdLog.Printf("Section ready: %s (%d)", seed.Title, section.ID)

		for j, sub := range seed.Subsections {
			sectionID := section.ID
			subsection := models.Subsection{Title: sub[0]}
			if err := models.DB.Where("title = ? AND section_id = ?", sub[0], sectionID).
				Attrs(models.Subsection{SectionID: &sectionID, EnglishTitle: sub[1], Position: j + 1, IsActive: true}).
				FirstOrCreate(&subsection).Error; err != nil {
				stdLog.Printf("Failed to seed subsection %s: %v", sub[0], err)
				continue
			}
			subsectionIDs[sub[1]] = subsection.ID
		}
	}

	categoryIDs := map[string]uint{}
	for _, name := range []string{"লিড নিউজ", "সর্বশেষ", "লাইভ", "Hot Topic", "প্রধান খবর", "নির্বাচিত খবর"} {
		category := models.Category{Name: name}
		if err := models.DB.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			stdLog.Printf("Failed to seed category %s: %v", name, err)
			continue
		}
		categoryIDs[name] = category.ID
	}

	tagIDs := map[string]uint{}
	for _, tag := range [][2]string{{"নির্বাচন", "election"}, {"বিশ্বকাপ", "world-cup"}, {"বাজেট", "budget"}} {
		row := models.Tag{Name: tag[0], Slug: tag[1]}
		if err := models.DB.Where("slug = ?", tag[1]).FirstOrCreate(&row).Error; err != nil {
			stdLog.Printf("Failed to seed tag %s: %v", tag[1], err)
			continue
		}
		tagIDs[tag[1]] = row.ID
	}

	articles := []articleSeed{
		{
			Section:    "National",
			Subsection: "Politics",
			Title:      "সংসদ নির্বাচনের তফসিল ঘোষণা",
			SubTitle:   "ভোটগ্রহণ হবে আগামী মাসে",
			Content:    "<p>নির্বাচন কমিশন আজ সংসদ নির্বাচনের তফসিল ঘোষণা করেছে।</p>",
			Reporter:   "নিজস্ব প্রতিবেদক",
			Categories: []string{"লিড নিউজ", "সর্বশেষ", "Hot Topic", "লাইভ"},
			Tags:       []string{"election"},
		},
		{
			Section:    "National",
			Title:      "বাজেট অধিবেশন শুরু",
			Content:    "<p>জাতীয় সংসদে বাজেট অধিবেশন শুরু হয়েছে।</p>",
			Reporter:   "সংসদ প্রতিবেদক",
			Categories: []string{"সর্বশেষ", "প্রধান খবর", "নির্বাচিত খবর"},
			Tags:       []string{"budget"},
		},
		{
			Section:    "Sports",
			Subsection: "Cricket",
			Title:      "সিরিজ জয়ে বাংলাদেশ",
			Content:    "<p>শেষ ম্যাচে জয় পেয়ে সিরিজ নিশ্চিত করেছে বাংলাদেশ।</p>",
			Reporter:   "ক্রীড়া প্রতিবেদক",
			Categories: []string{"লিড নিউজ"},
		},
		{
			Section:    "Sports",
			Subsection: "Football",
			Title:      "বিশ্বকাপ বাছাইয়ে নতুন কোচ",
			Content:    "<p>বাছাইপর্বের আগে দায়িত্ব নিলেন নতুন কোচ।</p>",
			Reporter:   "ক্রীড়া প্রতিবেদক",
			Tags:       []string{"world-cup"},
		},
		{
			Section:     "Entertainment",
			Title:       "নতুন চলচ্চিত্রের মুক্তির তারিখ ঘোষণা",
			Content:     "<p>ঈদে মুক্তি পাবে ছবিটি।</p>",
			Reporter:    "বিনোদন প্রতিবেদক",
			PublishedIn: 2 * time.Hour,
		},
	}

	now := models.NowUTC()
	var leadArticleID uint
	for _, seed := range articles {
		sectionID, ok := sectionIDs[seed.Section]
		if !ok {
			stdLog.Printf("Skip article %s: missing section %s", seed.Title, seed.Section)
			continue
		}
		var existing models.Article
		if err := models.DB.Where("title = ?", seed.Title).First(&existing).Error; err == nil {
			stdLog.Printf("Article already exists: %s", seed.Title)
			if leadArticleID == 0 {
				leadArticleID = existing.ID
			}
			continue
		}

		article := models.Article{
			SectionID: &sectionID,
			Title:     seed.Title,
			SubTitle:  seed.SubTitle,
			Content:   seed.Content,
			Reporter:  seed.Reporter,
		}
		if seed.Subsection != "" {
			if subsectionID, ok := subsectionIDs[seed.Subsection]; ok {
				article.SubsectionID = &subsectionID
			}
		}
		if seed.PublishedIn > 0 {
			at := now.Add(seed.PublishedIn)
			article.ScheduledPublishAt = &at
		}
		for _, name := range seed.Categories {
			if id, ok := categoryIDs[name]; ok {
				article.Categories = append(article.Categories, models.Category{ID: id})
			}
		}
		for _, slug := range seed.Tags {
			if id, ok := tagIDs[slug]; ok {
				article.Tags = append(article.Tags, models.Tag{ID: id})
			}
		}
		if err := models.DB.Create(&article).Error; err != nil {
			stdLog.Printf("Failed to create article %s: %v", seed.Title, err)
			continue
		}
		if leadArticleID == 0 {
			leadArticleID = article.ID
		}
		stdLog.Printf("Created article: %s (%d)", seed.Title, article.ID)
	}

	if leadArticleID != 0 {
		title := models.SpecialTitle{Title: "বিশেষ আয়োজন"}
		if err := models.DB.Where("title = ?", title.Title).Attrs(models.SpecialTitle{IsActive: true}).FirstOrCreate(&title).Error; err != nil {
			stdLog.Printf("Failed to seed special title: %v", err)
		} else {
			pin := models.SpecialArticle{SpecialTitleID: title.ID, ArticleID: leadArticleID}
			if err := models.DB.Where("special_title_id = ? AND article_id = ?", title.ID, leadArticleID).
				Attrs(models.SpecialArticle{MainNews: true}).
				FirstOrCreate(&pin).Error; err != nil {
				stdLog.Printf("Failed to seed special article: %v", err)
			}
		}
	}

	authorCategory := models.AuthorCategory{Slug: "editorial-board"}
	if err := models.DB.Where("slug = ?", authorCategory.Slug).Attrs(models.AuthorCategory{Title: "সম্পাদকমণ্ডলী"}).FirstOrCreate(&authorCategory).Error; err != nil {
		stdLog.Printf("Failed to seed author category: %v", err)
	} else {
		role := models.AuthorRole{CategoryID: authorCategory.ID, Title: "সম্পাদক"}
		if err := models.DB.Where("category_id = ? AND title = ?", role.CategoryID, role.Title).Attrs(models.AuthorRole{Priority: 1}).FirstOrCreate(&role).Error; err != nil {
			stdLog.Printf("Failed to seed author role: %v", err)
		} else {
			roleID := role.ID
			author := models.Author{Slug: "editor-in-chief"}
			if err := models.DB.Where("slug = ?", author.Slug).Attrs(models.Author{
				CategoryID:  authorCategory.ID,
				RoleID:      &roleID,
				Name:        "প্রধান সম্পাদক",
				Description: "জাগরণ নিউজের প্রধান সম্পাদক",
				IsActive:    true,
			}).FirstOrCreate(&author).Error; err != nil {
				stdLog.Printf("Failed to seed author: %v", err)
			}
		}
	}

	var infoCount int64
	models.DB.Model(&models.SiteInfo{}).Count(&infoCount)
	if infoCount == 0 {
		name := cfg.Site.Name
		if name == "" {
			name = "জাগরণ নিউজ"
		}
		if err := models.DB.Create(&models.SiteInfo{Name: name, Logo: "/uploads/site/logo.png"}).Error; err != nil {
			stdLog.Printf("Failed to seed site info: %v", err)
		}
	}

	var robotsCount int64
	models.DB.Model(&models.RobotsTxt{}).Count(&robotsCount)
	if robotsCount == 0 {
		robots := models.RobotsTxt{
			Content:  "User-agent: *\nDisallow: /api/v1/admin/\nSitemap: " + cfg.Site.TrimmedSiteURL() + "/sitemap.xml\n",
			IsActive: true,
		}
		if err := models.DB.Create(&robots).Error; err != nil {
			stdLog.Printf("Failed to seed robots.txt: %v", err)
		}
	}

	for _, page := range []models.DefaultPage{
		{Title: "আমাদের সম্পর্কে", Link: "about-us", Content: "<p>জাগরণ নিউজ একটি অনলাইন সংবাদমাধ্যম।</p>"},
		{Title: "গোপনীয়তা নীতি", Link: "privacy-policy", Content: "<p>গোপনীয়তা নীতি।</p>"},
	} {
		row := page
		if err := models.DB.Where("link = ?", page.Link).Attrs(page).FirstOrCreate(&row).Error; err != nil {
			stdLog.Printf("Failed to seed default page %s: %v", page.Link, err)
		}
	}

	if sportsID, ok := sectionIDs["Sports"]; ok {
		video := models.VideoPost{YoutubeLink: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
		if err := models.DB.Where("youtube_link = ?", video.YoutubeLink).
			Attrs(models.VideoPost{SectionID: &sportsID, VideoTitle: "ম্যাচ হাইলাইটস"}).
			FirstOrCreate(&video).Error; err != nil {
			stdLog.Printf("Failed to seed video: %v", err)
		}
	}

	stdLog.Printf("Seed finished")
}
