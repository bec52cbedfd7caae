package repository

import "time"

// SectionListFilter section list options
type SectionListFilter struct {
	ActiveOnly      bool
	WithSubsections bool // preload subsections, filtered by ActiveOnly as well
}

// ArticleVisibleFilter query over publicly visible articles.
// Every field is optional; an empty filter returns the newest visible articles.
type ArticleVisibleFilter struct {
	Now           time.Time // visibility cut-off, zero means time.Now()
	CategoryIDs   []uint    // article shares at least one of these categories
	SectionID     *uint
	SubsectionID  *uint
	TagID         *uint
	IDs           []uint
	ExcludeIDs    []uint
	Search        string // title substring
	CreatedSince  *time.Time
	Limit         int
	Offset        int
	WithRelations bool // preload section and subsection
	WithTaxonomy  bool // preload categories and tags
	LatestUpdated bool // order by updated_at instead of created_at
}

// ArticleAdminFilter admin article list options
type ArticleAdminFilter struct {
	Page         int
	PageSize     int
	SectionID    *uint
	SubsectionID *uint
	Search       string
	Status       string // "", scheduled, published
	Now          time.Time
}

// MostViewedFilter view-count ranking options
type MostViewedFilter struct {
	Now          time.Time
	CreatedSince *time.Time
	Limit        int
}

// ReviewListFilter review list options
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ArticleID uint
}

// RedirectionListFilter url redirection list options
type RedirectionListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// ShortURLListFilter short url list options
type ShortURLListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// AuthorListFilter author list options
type AuthorListFilter struct {
	CategoryID uint
	ActiveOnly bool
}

// VideoListFilter video list options
type VideoListFilter struct {
	Page      int
	PageSize  int
	SectionID *uint
}

// RoleAuditLogListFilter role audit list options
type RoleAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
