package api

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}

// User is an account as reported by the auth endpoints.
type User struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	Nickname      string `json:"nickname"`
	Avatar        string `json:"avatar"`
	Bio           string `json:"bio"`
	Website       string `json:"website"`
	Role          string `json:"role"`
	IsVerified    bool   `json:"is_verified"`
	ArticlesCount int    `json:"articles_count"`
	CommentsCount int    `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
}

// Author is the trimmed user shape embedded in relational records.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// AuthResponse carries the credential pair minted on login/register.
type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Email           string `json:"email,omitempty"`
	Nickname        string `json:"nickname,omitempty"`
}

// Category is a relational category record.
type Category struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	CategoryType  string `json:"category_type"`
	Icon          string `json:"icon,omitempty"`
	Description   string `json:"description,omitempty"`
	SortOrder     int    `json:"sort_order"`
	ArticlesCount int    `json:"articles_count"`
}

// Tag is a relational tag record.
type Tag struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Color         string `json:"color,omitempty"`
	Description   string `json:"description,omitempty"`
	ArticlesCount int    `json:"articles_count"`
}

// TagRef is the nested tag shape embedded in articles and search hits.
type TagRef struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// CategoryRef is the nested category shape embedded in search hits.
type CategoryRef struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// IndexRecord is the flattened article shape served by the list
// endpoint, backed by the backend's full-text index. Tag names and the
// category identifier are inline strings instead of nested records.
// It is decoded only at the boundary of list-shaped endpoints, so the
// two upstream shapes are told apart by origin, never by field probing.
type IndexRecord struct {
	ID             int      `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	AuthorUsername string   `json:"author_username"`
	AuthorNickname string   `json:"author_nickname"`
	CategoryName   string   `json:"category_name"`
	CategorySlug   string   `json:"category_slug"`
	TagsNames      []string `json:"tags_names"`
	Locale         string   `json:"locale"`
	Status         string   `json:"status"`
	Featured       bool     `json:"featured"`
	ReadingTime    int      `json:"reading_time"`
	CoverImage     string   `json:"cover_image"`
	CreatedAt      string   `json:"created_at"`
	PublishedAt    string   `json:"published_at"`
	ViewCount      int      `json:"view_count"`
	LikeCount      int      `json:"like_count"`
	CommentCount   int      `json:"comment_count"`

	// Project-only fields.
	Stars     int      `json:"stars,omitempty"`
	Forks     int      `json:"forks,omitempty"`
	Repo      string   `json:"repo,omitempty"`
	Demo      string   `json:"demo,omitempty"`
	TechStack []string `json:"tech_stack,omitempty"`
}

// Article is the fully normalized relational record served by the
// detail endpoint.
type Article struct {
	ID           int      `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	Author       *Author  `json:"author"`
	Category     Category `json:"category"`
	CategoryType string   `json:"category_type"`
	Tags         []TagRef `json:"tags"`
	Locale       string   `json:"locale"`
	ReadingTime  int      `json:"reading_time"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
	CoverImage   string   `json:"cover_image"`
	Keywords     string   `json:"keywords"`
	ViewCount    int      `json:"view_count"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
	PublishedAt  string   `json:"published_at"`

	// Project-only fields.
	Stars     int      `json:"stars,omitempty"`
	Forks     int      `json:"forks,omitempty"`
	Repo      string   `json:"repo,omitempty"`
	Demo      string   `json:"demo,omitempty"`
	TechStack []string `json:"tech_stack,omitempty"`
}

// ArticleDraft is the write shape for article create/update. Pointer
// fields distinguish "not provided" from zero values so partial updates
// only touch what the caller set.
type ArticleDraft struct {
	Title       *string  `json:"title,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Description *string  `json:"description,omitempty"`
	Content     *string  `json:"content,omitempty"`
	CategoryID  *int     `json:"category_id,omitempty"`
	TagIDs      []int    `json:"tag_ids,omitempty"`
	Locale      *string  `json:"locale,omitempty"`
	ReadingTime *int     `json:"reading_time,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	CoverImage  *string  `json:"cover_image,omitempty"`
	Keywords    *string  `json:"keywords,omitempty"`
	PublishedAt *string  `json:"published_at,omitempty"`
	Stars       *int     `json:"stars,omitempty"`
	Forks       *int     `json:"forks,omitempty"`
	Repo        *string  `json:"repo,omitempty"`
	Demo        *string  `json:"demo,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
}

// Comment is a comment record, possibly carrying its replies.
type Comment struct {
	ID           int       `json:"id"`
	Article      int       `json:"article"`
	ArticleTitle string    `json:"article_title,omitempty"`
	ArticleSlug  string    `json:"article_slug,omitempty"`
	Author       *Author   `json:"author,omitempty"`
	GuestName    string    `json:"guest_name"`
	Parent       *int      `json:"parent,omitempty"`
	Content      string    `json:"content"`
	IsMarkdown   bool      `json:"is_markdown"`
	Status       string    `json:"status"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    string    `json:"created_at"`
	Replies      []Comment `json:"replies,omitempty"`
}

// CommentCreate is the write shape for new comments.
type CommentCreate struct {
	Article    int    `json:"article"`
	Parent     *int   `json:"parent,omitempty"`
	Content    string `json:"content"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestURL   string `json:"guest_url,omitempty"`
}

// OverviewStats is the admin dashboard summary.
type OverviewStats struct {
	TotalArticles     int `json:"total_articles"`
	TotalUsers        int `json:"total_users"`
	TotalComments     int `json:"total_comments"`
	TotalViews        int `json:"total_views"`
	ArticlesPublished int `json:"articles_published"`
	ArticlesDraft     int `json:"articles_draft"`
	TodayArticles     int `json:"today_articles"`
	TodayUsers        int `json:"today_users"`
	TodayComments     int `json:"today_comments"`
	TodayViews        int `json:"today_views"`
}

// PopularArticle is one entry of the popularity ranking.
type PopularArticle struct {
	ID           int     `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CoverImage   string  `json:"cover_image"`
	ViewCount    int     `json:"view_count"`
	LikeCount    int     `json:"like_count"`
	CommentCount int     `json:"comment_count"`
	CreatedAt    string  `json:"created_at"`
	Author       *Author `json:"author,omitempty"`
}

// SearchHit is one result from the remote full-text search service.
// Highlight maps a field name to its matched fragments.
type SearchHit struct {
	ID          int                 `json:"id"`
	Slug        string              `json:"slug"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    *CategoryRef        `json:"category,omitempty"`
	Tags        []TagRef            `json:"tags,omitempty"`
	Locale      string              `json:"locale"`
	ReadingTime int                 `json:"reading_time"`
	Featured    bool                `json:"featured"`
	ViewCount   int                 `json:"view_count"`
	PublishedAt string              `json:"published_at"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
}

// SearchResponse is the search service's reply envelope.
type SearchResponse struct {
	Items    []SearchHit `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Query    string      `json:"query"`
}
