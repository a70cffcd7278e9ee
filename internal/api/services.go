package api

// Services bundles one typed service per backend resource around a
// single shared Client. It is constructed once at startup and handed to
// the stores and the UI explicitly; there is no package-level instance.
type Services struct {
	Auth       *AuthService
	Articles   *ArticleService
	Categories *CategoryService
	Tags       *TagService
	Comments   *CommentService
	Stats      *StatsService
	Search     *SearchService
	Users      *UserService
}

func NewServices(client *Client) *Services {
	return &Services{
		Auth:       NewAuthService(client),
		Articles:   NewArticleService(client),
		Categories: NewCategoryService(client),
		Tags:       NewTagService(client),
		Comments:   NewCommentService(client),
		Stats:      NewStatsService(client),
		Search:     NewSearchService(client),
		Users:      NewUserService(client),
	}
}
