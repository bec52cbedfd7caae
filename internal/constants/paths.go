package constants

import "strings"

// Top-level path segments owned by system routes. The router registers its groups
// under these names and the path resolver never treats them as section slugs.
const (
	PathSitemaps       = "sitemaps"
	PathSitemapXML     = "sitemap.xml"
	PathRobotsTxt      = "robots.txt"
	PathAdsTxt         = "ads.txt"
	PathAdmin          = "admin"
	PathStaffAdmin     = "jag-admin"
	PathEditorUpload   = "ckeditor"
	PathStatic         = "static"
	PathMedia          = "media"
	PathAPI            = "api"
	PathDebug          = "debug"
	PathSearch         = "search"
	PathNews           = "news"
	PathAuthors        = "authors"
	PathDefaultPages   = "default-pages"
	PathCampaign       = "jagoron-1lakh"
	PathEditor         = "editor"
	PathShortURL       = "s"
	PathUploads        = "uploads"
	PathNewsDetail     = "detail"
	PathLegacyListing  = "/" + PathNews + "/"
	PathLegacyDetail   = "/" + PathNews + "/" + PathNewsDetail + "/"
	PathShortURLPrefix = "/" + PathShortURL + "/"
)

// ReservedPathSegments is the single table of first segments that can never be
// section slugs.
var ReservedPathSegments = []string{
	PathSitemaps,
	PathSitemapXML,
	PathRobotsTxt,
	PathAdsTxt,
	PathAdmin,
	PathStaffAdmin,
	PathEditorUpload,
	PathStatic,
	PathMedia,
	PathAPI,
	PathDebug,
	PathSearch,
	PathNews,
	PathAuthors,
	PathDefaultPages,
	PathCampaign,
	PathEditor,
	PathShortURL,
	PathUploads,
}

var reservedPathSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ReservedPathSegments))
	for _, segment := range ReservedPathSegments {
		set[segment] = struct{}{}
	}
	return set
}()

// IsReservedPathSegment reports whether segment belongs to a system route.
func IsReservedPathSegment(segment string) bool {
	_, ok := reservedPathSet[strings.ToLower(strings.TrimSpace(segment))]
	return ok
}
