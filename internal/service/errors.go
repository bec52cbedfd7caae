package service

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrSlugExists                = errors.New("slug already exists")
	ErrSlugReserved              = errors.New("slug is reserved by a system route")
	ErrLinkExists                = errors.New("link already exists")
	ErrOldURLExists              = errors.New("old url already has a redirection")
	ErrTagNameRequired           = errors.New("tag name is required")
	ErrTitleRequired             = errors.New("title is required")
	ErrArticleSectionRequired    = errors.New("article section is required")
	ErrSubsectionSectionMismatch = errors.New("subsection does not belong to the article section")
	ErrSectionRequired           = errors.New("subsection must belong to a section")
	ErrSectionInUse              = errors.New("section still has articles")
	ErrSubsectionInUse           = errors.New("subsection still has articles")
	ErrCategoryNotFound          = errors.New("category not found")
	ErrTagNotFound               = errors.New("tag not found")
	ErrInvalidReaction           = errors.New("invalid reaction")
	ErrReviewCommentRequired     = errors.New("review comment is required")
	ErrReviewCommentTooLong      = errors.New("review comment is too long")
	ErrInvalidRedirectType       = errors.New("redirect type must be 301 or 302")
	ErrInvalidRedirectURL        = errors.New("redirect urls must be non-empty and different")
	ErrInvalidShortURL           = errors.New("invalid url")
	ErrShortCodeExhausted        = errors.New("could not allocate a unique short code")
	ErrInvalidYoutubeLink        = errors.New("invalid youtube link")
	ErrSpecialArticleRequired    = errors.New("special section needs an existing article")
	ErrCaptchaRequired           = errors.New("captcha is required")
	ErrCaptchaInvalid            = errors.New("captcha is invalid")
	ErrInvalidCredentials        = errors.New("invalid username or password")
	ErrInvalidPassword           = errors.New("current password is incorrect")
	ErrWeakPassword              = errors.New("password is too weak")
	ErrAdminExists               = errors.New("admin username already exists")
	ErrCannotDeleteSelf          = errors.New("cannot delete the current admin")
	ErrProtectedAdmin            = errors.New("the default admin cannot be deleted")
	ErrInvalidToken              = errors.New("invalid token")
	ErrDashboardRangeInvalid     = errors.New("dashboard month is invalid")
)
