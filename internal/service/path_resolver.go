package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// ResolutionKind what a public path points at
type ResolutionKind string

const (
	ResolutionHome       ResolutionKind = "home"
	ResolutionAllNews    ResolutionKind = "all_news"
	ResolutionSection    ResolutionKind = "section"
	ResolutionSubsection ResolutionKind = "subsection"
	ResolutionArticle    ResolutionKind = "article"
)

// listing query parameters carried over canonicalization redirects
var preservedListingParams = []string{"page", "tag", "category"}

// ResolveRequest one public request
type ResolveRequest struct {
	Path       string
	Query      url.Values
	Privileged bool // staff preview principal
}

// Resolution a successfully resolved public path
type Resolution struct {
	Kind          ResolutionKind
	CanonicalPath string
	Section       *models.Section
	Subsection    *models.Subsection
	Article       *models.Article
}

// PathResolver maps public paths to sections, subsections and articles and
// decides canonicalization redirects.
type PathResolver struct {
	sectionRepo repository.SectionRepository
	articleRepo repository.ArticleRepository
	clock       Clock
}

// NewPathResolver creates the resolver
func NewPathResolver(sectionRepo repository.SectionRepository, articleRepo repository.ArticleRepository, clock Clock) *PathResolver {
	return &PathResolver{sectionRepo: sectionRepo, articleRepo: articleRepo, clock: clock}
}

// Resolve returns a Resolution or one of ErrContentNotFound, ErrPathReserved,
// *RedirectRequiredError, *ValidationError or a repository error.
func (r *PathResolver) Resolve(req ResolveRequest) (*Resolution, error) {
	segments := splitPath(req.Path)
	if len(segments) == 0 {
		return &Resolution{Kind: ResolutionHome, CanonicalPath: "/"}, nil
	}

	first := strings.ToLower(segments[0])
	if first == constants.PathNews {
		return r.resolveLegacy(req, segments)
	}
	if constants.IsReservedPathSegment(first) {
		return nil, ErrPathReserved
	}

	switch len(segments) {
	case 1:
		return r.resolveListing(req, segments[0], "")
	case 2:
		if isNumericSegment(segments[1]) {
			return r.resolveArticle(req, segments[1])
		}
		return r.resolveListing(req, segments[0], segments[1])
	case 3:
		if !isNumericSegment(segments[2]) {
			return nil, ErrContentNotFound
		}
		return r.resolveArticle(req, segments[2])
	default:
		return nil, ErrContentNotFound
	}
}

func (r *PathResolver) resolveListing(req ResolveRequest, sectionSegment, subsectionSegment string) (*Resolution, error) {
	section, err := r.matchSection(sectionSegment)
	if err != nil {
		return nil, err
	}
	resolution := &Resolution{Kind: ResolutionSection, Section: section}
	if subsectionSegment == "" {
		resolution.CanonicalPath = SectionCanonicalPath(section)
	} else {
		subsection, err := r.matchSubsection(section, subsectionSegment)
		if err != nil {
			return nil, err
		}
		resolution.Kind = ResolutionSubsection
		resolution.Subsection = subsection
		resolution.CanonicalPath = SubsectionCanonicalPath(section, subsection)
	}
	if req.Path != resolution.CanonicalPath {
		return nil, permanentRedirect(withListingParams(resolution.CanonicalPath, req.Query))
	}
	return resolution, nil
}

func (r *PathResolver) matchSection(segment string) (*models.Section, error) {
	sections, err := r.sectionRepo.ListSections(repository.SectionListFilter{})
	if err != nil {
		return nil, err
	}
	for i := range sections {
		slug := SectionSlug(&sections[i])
		if slug != "" && strings.EqualFold(slug, segment) {
			return &sections[i], nil
		}
	}
	return nil, ErrContentNotFound
}

func (r *PathResolver) matchSubsection(section *models.Section, segment string) (*models.Subsection, error) {
	subsections, err := r.sectionRepo.ListSubsections(section.ID, true)
	if err != nil {
		return nil, err
	}
	for i := range subsections {
		slug := SubsectionSlug(&subsections[i])
		if slug != "" && strings.EqualFold(slug, segment) {
			return &subsections[i], nil
		}
	}
	return nil, ErrContentNotFound
}

func (r *PathResolver) resolveArticle(req ResolveRequest, idSegment string) (*Resolution, error) {
	id, ok := parseID(idSegment)
	if !ok {
		return nil, ErrContentNotFound
	}
	article, err := r.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrContentNotFound
	}
	if !IsVisible(article, r.clock.now(), req.Privileged) {
		return nil, ErrContentNotFound
	}
	canonical, ok := ArticleCanonicalPath(article)
	if !ok {
		return nil, ErrContentNotFound
	}
	if req.Path != canonical {
		return nil, permanentRedirect(canonical)
	}
	return &Resolution{
		Kind:          ResolutionArticle,
		CanonicalPath: canonical,
		Section:       article.Section,
		Subsection:    article.Subsection,
		Article:       article,
	}, nil
}

// resolveLegacy handles /news/?section=ID&sub_section=ID and /news/detail/ID/.
func (r *PathResolver) resolveLegacy(req ResolveRequest, segments []string) (*Resolution, error) {
	switch {
	case len(segments) == 1:
		return r.resolveLegacyListing(req)
	case len(segments) == 3 && strings.EqualFold(segments[1], constants.PathNewsDetail) && isNumericSegment(segments[2]):
		return r.resolveArticle(req, segments[2])
	default:
		return nil, ErrContentNotFound
	}
}

func (r *PathResolver) resolveLegacyListing(req ResolveRequest) (*Resolution, error) {
	sectionParam := strings.TrimSpace(req.Query.Get("section"))
	subsectionParam := strings.TrimSpace(req.Query.Get("sub_section"))

	if sectionParam == "" {
		if req.Path != constants.PathLegacyListing {
			return nil, permanentRedirect(withListingParams(constants.PathLegacyListing, req.Query))
		}
		return &Resolution{Kind: ResolutionAllNews, CanonicalPath: constants.PathLegacyListing}, nil
	}

	sectionID, err := parseQueryID("section", sectionParam)
	if err != nil {
		return nil, err
	}
	var subsectionID uint
	if subsectionParam != "" {
		if subsectionID, err = parseQueryID("sub_section", subsectionParam); err != nil {
			return nil, err
		}
	}

	section, err := r.sectionRepo.GetSectionByID(sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrContentNotFound
	}
	resolution := &Resolution{Kind: ResolutionSection, Section: section, CanonicalPath: SectionCanonicalPath(section)}

	if subsectionID != 0 {
		subsection, err := r.sectionRepo.GetSubsectionByID(subsectionID)
		if err != nil {
			return nil, err
		}
		if subsection == nil || !subsection.IsActive || subsection.SectionID == nil || *subsection.SectionID != section.ID {
			return nil, ErrContentNotFound
		}
		resolution.Kind = ResolutionSubsection
		resolution.Subsection = subsection
		resolution.CanonicalPath = SubsectionCanonicalPath(section, subsection)
	}

	canonicalURL, _ := url.Parse(resolution.CanonicalPath)
	if canonicalURL == nil || canonicalURL.Path != constants.PathLegacyListing || req.Path != constants.PathLegacyListing {
		return nil, permanentRedirect(withListingParams(resolution.CanonicalPath, req.Query))
	}
	return resolution, nil
}

// splitPath drops empty segments; the raw path keeps its trailing slash for comparison
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func isNumericSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseQueryID(field, value string) (uint, error) {
	if !isNumericSegment(value) {
		return 0, &ValidationError{Field: field, Reason: "must be a numeric id"}
	}
	id, err := strconv.ParseUint(value, 10, strconv.IntSize)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "id is out of range"}
	}
	return uint(id), nil
}

// withListingParams appends the listing params of query onto target
func withListingParams(target string, query url.Values) string {
	carried := url.Values{}
	for _, key := range preservedListingParams {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			carried.Set(key, value)
		}
	}
	if len(carried) == 0 {
		return target
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}
	merged := parsed.Query()
	for key, values := range carried {
		merged[key] = values
	}
	parsed.RawQuery = merged.Encode()
	return parsed.String()
}
