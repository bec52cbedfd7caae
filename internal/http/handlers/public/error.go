package public

import (
	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

var contentErrorRules = []handlershared.MappedError{
	{Target: service.ErrContentNotFound, Code: response.CodeNotFound, Msg: "content not found"},
	{Target: service.ErrTagNotFound, Code: response.CodeNotFound, Msg: "tag not found"},
}

var engagementErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidReaction, Code: response.CodeBadRequest, Msg: "invalid reaction"},
	{Target: service.ErrReviewCommentRequired, Code: response.CodeBadRequest, Msg: "comment is required"},
	{Target: service.ErrReviewCommentTooLong, Code: response.CodeBadRequest, Msg: "comment is too long"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Msg: "captcha is required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Msg: "captcha is invalid"},
	{Target: service.ErrInvalidShortURL, Code: response.CodeBadRequest, Msg: "invalid url"},
}

func respondContentError(c *gin.Context, err error, fallbackMsg string) {
	if validation, ok := service.AsValidation(err); ok {
		respondError(c, response.CodeBadRequest, validation.Error(), nil)
		return
	}
	handlershared.RespondMapped(c, err, contentErrorRules, response.CodeInternal, fallbackMsg)
}

func respondEngagementError(c *gin.Context, err error, fallbackMsg string) {
	if validation, ok := service.AsValidation(err); ok {
		respondError(c, response.CodeBadRequest, validation.Error(), nil)
		return
	}
	handlershared.RespondMapped(c, err, handlershared.ConcatMappedErrors(contentErrorRules, engagementErrorRules), response.CodeInternal, fallbackMsg)
}
