package constants

// Reaction kinds
const (
	ReactionLove  = "love"
	ReactionClap  = "clap"
	ReactionSmile = "smile"
	ReactionSad   = "sad"
)

// ReactionKinds lists every accepted reaction in display order.
var ReactionKinds = []string{ReactionLove, ReactionClap, ReactionSmile, ReactionSad}

// Redirect types for admin-managed URL redirections
const (
	RedirectTypePermanent = "301"
	RedirectTypeTemporary = "302"
)

// Content defaults
const (
	DefaultRelatedLimit      = 8
	RelatedTitleWindow       = 50
	ListingPageSize          = 20
	ListingPageWindow        = 7
	MostReadLimit            = 5
	TodaysMostViewedLimit    = 4
	SpecialMainArticleLimit  = 2
	SpecialSideArticleLimit  = 4
	ShortCodeLength          = 6
	ReviewCommentMaxRunes    = 1000
	ReporterStatsMaxReporter = 10
	HomeHeroLimit            = 4
	HomeSecondaryOffset      = 5
	HomeSecondaryLimit       = 4
	HomeElectedLimit         = 5
	DetailMainNewsLimit      = 3
	DetailElectedLimit       = 5
)

// Google News feed defaults
const (
	GoogleNewsWindowHours     = 48
	GoogleNewsMaxItems        = 1000
	GoogleNewsPublicationName = "জাগরণ নিউজ"
	GoogleNewsLanguage        = "bn"
)

// Captcha scenes
const (
	CaptchaSceneReview = "review"
)

// Visitor identification header used by reactions
const VisitorIDHeader = "X-Visitor-ID"

// Setting keys
const (
	SettingKeySiteConfig = "site_config"
)

// Queues and task types
const (
	QueueDefault          = "default"
	TaskArticlePublish    = "article:publish"
	TaskContentCachePurge = "content:cache_purge"
)
