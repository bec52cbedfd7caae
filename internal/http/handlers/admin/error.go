package admin

import (
	"github.com/jagoron-news/internal/authz"
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

var notFoundRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Msg: "not found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Msg: "category not found"},
	{Target: service.ErrTagNotFound, Code: response.CodeBadRequest, Msg: "tag not found"},
}

var contentRules = []handlershared.MappedError{
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Msg: "slug already exists"},
	{Target: service.ErrSlugReserved, Code: response.CodeBadRequest, Msg: "slug is reserved"},
	{Target: service.ErrLinkExists, Code: response.CodeConflict, Msg: "link already exists"},
	{Target: service.ErrTitleRequired, Code: response.CodeBadRequest, Msg: "title is required"},
	{Target: service.ErrTagNameRequired, Code: response.CodeBadRequest, Msg: "tag name is required"},
	{Target: service.ErrArticleSectionRequired, Code: response.CodeBadRequest, Msg: "section is required"},
	{Target: service.ErrSubsectionSectionMismatch, Code: response.CodeBadRequest, Msg: "subsection does not belong to the section"},
	{Target: service.ErrSectionRequired, Code: response.CodeBadRequest, Msg: "section is required"},
	{Target: service.ErrSectionInUse, Code: response.CodeConflict, Msg: "section still has articles"},
	{Target: service.ErrSubsectionInUse, Code: response.CodeConflict, Msg: "subsection still has articles"},
	{Target: service.ErrSpecialArticleRequired, Code: response.CodeBadRequest, Msg: "article is required"},
	{Target: service.ErrInvalidYoutubeLink, Code: response.CodeBadRequest, Msg: "invalid youtube link"},
	{Target: service.ErrOldURLExists, Code: response.CodeConflict, Msg: "old url already redirected"},
	{Target: service.ErrInvalidRedirectType, Code: response.CodeBadRequest, Msg: "redirect type must be 301 or 302"},
	{Target: service.ErrInvalidRedirectURL, Code: response.CodeBadRequest, Msg: "invalid redirect url"},
	{Target: service.ErrDashboardRangeInvalid, Code: response.CodeBadRequest, Msg: "dashboard month is invalid"},
}

var accountRules = []handlershared.MappedError{
	{Target: service.ErrAdminExists, Code: response.CodeConflict, Msg: "username already exists"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Msg: "password is too weak"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Msg: "current password is incorrect"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Msg: "cannot delete yourself"},
	{Target: service.ErrProtectedAdmin, Code: response.CodeForbidden, Msg: "the default admin is protected"},
}

var authzRules = []handlershared.MappedError{
	{Target: authz.ErrReservedRole, Code: response.CodeBadRequest, Msg: "role name is reserved"},
	{Target: authz.ErrUnavailable, Code: response.CodeInternal, Msg: "authorization is unavailable"},
}

var uploadRules = []handlershared.MappedError{
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Msg: "file is too large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Msg: "file type is not allowed"},
	{Target: service.ErrUploadInvalidImage, Code: response.CodeBadRequest, Msg: "image cannot be decoded"},
}

var serviceRules = handlershared.ConcatMappedErrors(notFoundRules, contentRules, accountRules, authzRules, uploadRules)

// respondServiceError maps service errors; unknown errors are logged as internal
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	if validation, ok := service.AsValidation(err); ok {
		respondError(c, response.CodeBadRequest, validation.Error(), nil)
		return
	}
	handlershared.RespondMapped(c, err, serviceRules, response.CodeInternal, fallbackMsg)
}
