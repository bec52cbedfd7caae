package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jagoron-news/internal/constants"
	"github.com/jagoron-news/internal/models"
)

// SectionSlug returns the derived slug, empty when the section has no English title
func SectionSlug(section *models.Section) string {
	if section == nil {
		return ""
	}
	return Slugify(section.EnglishTitle)
}

// SubsectionSlug returns the derived slug, empty when the subsection has no English title
func SubsectionSlug(subsection *models.Subsection) string {
	if subsection == nil {
		return ""
	}
	return Slugify(subsection.EnglishTitle)
}

// SectionCanonicalPath is /{slug}/, or the legacy query form without a slug
func SectionCanonicalPath(section *models.Section) string {
	if section == nil {
		return constants.PathLegacyListing
	}
	if slug := SectionSlug(section); slug != "" {
		return "/" + slug + "/"
	}
	return legacyListingPath(section.ID, 0)
}

// SubsectionCanonicalPath composes both slugs. When either slug is missing the
// legacy query form is canonical, so the subsection listing stays addressable.
func SubsectionCanonicalPath(section *models.Section, subsection *models.Subsection) string {
	if subsection == nil {
		return SectionCanonicalPath(section)
	}
	sectionSlug := SectionSlug(section)
	subSlug := SubsectionSlug(subsection)
	if sectionSlug == "" || subSlug == "" {
		var sectionID uint
		if section != nil {
			sectionID = section.ID
		} else if subsection.SectionID != nil {
			sectionID = *subsection.SectionID
		}
		return legacyListingPath(sectionID, subsection.ID)
	}
	return "/" + sectionSlug + "/" + subSlug + "/"
}

// ArticleCanonicalPath is /{section}/[{subsection}/]{id}/, or /news/detail/{id}/ when
// the section has no slug. Articles without a section have no canonical path.
func ArticleCanonicalPath(article *models.Article) (string, bool) {
	if article == nil || article.Section == nil {
		return "", false
	}
	id := strconv.FormatUint(uint64(article.ID), 10)
	sectionSlug := SectionSlug(article.Section)
	if sectionSlug == "" {
		return constants.PathLegacyDetail + id + "/", true
	}
	if article.Subsection != nil {
		if subSlug := SubsectionSlug(article.Subsection); subSlug != "" {
			return "/" + sectionSlug + "/" + subSlug + "/" + id + "/", true
		}
	}
	return "/" + sectionSlug + "/" + id + "/", true
}

func legacyListingPath(sectionID, subsectionID uint) string {
	query := url.Values{}
	if sectionID != 0 {
		query.Set("section", strconv.FormatUint(uint64(sectionID), 10))
	}
	if subsectionID != 0 {
		query.Set("sub_section", strconv.FormatUint(uint64(subsectionID), 10))
	}
	if len(query) == 0 {
		return constants.PathLegacyListing
	}
	return fmt.Sprintf("%s?%s", constants.PathLegacyListing, query.Encode())
}
