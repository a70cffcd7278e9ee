package api

import "fmt"

// Fixed endpoint paths of the blog backend, relative to the base URL.
const (
	endpointLogin    = "/auth/login/"
	endpointRegister = "/auth/register/"
	endpointLogout   = "/auth/logout/"
	endpointMe       = "/auth/me/"
	endpointRefresh  = "/auth/refresh/"

	endpointUsers          = "/auth/users/"
	endpointUserProfile    = "/auth/users/profile/"
	endpointChangePassword = "/auth/users/change-password/"

	endpointArticles         = "/articles/"
	endpointArticlesFeatured = "/articles/featured/"
	endpointArticlesPopular  = "/articles/popular/"

	endpointCategories = "/categories/"
	endpointTags       = "/tags/"
	endpointComments   = "/comments/"

	endpointStatsOverview = "/stats/overview/"
	endpointStatsPopular  = "/stats/popular_articles/"

	endpointSearch        = "/search/"
	endpointSearchSuggest = "/search/suggest/"
)

func articleDetail(ref string) string  { return endpointArticles + ref + "/" }
func articleLike(ref string) string    { return articleDetail(ref) + "like/" }
func articleUnlike(ref string) string  { return articleDetail(ref) + "unlike/" }
func articleRelated(ref string) string { return articleDetail(ref) + "related/" }

func categoryDetail(slug string) string { return endpointCategories + slug + "/" }
func tagDetail(slug string) string      { return endpointTags + slug + "/" }

func commentDetail(id int) string  { return fmt.Sprintf("%s%d/", endpointComments, id) }
func commentReplies(id int) string { return commentDetail(id) + "replies/" }
func commentApprove(id int) string { return commentDetail(id) + "approve/" }
func commentReject(id int) string  { return commentDetail(id) + "reject/" }
func commentSpam(id int) string    { return commentDetail(id) + "spam/" }
func commentLike(id int) string    { return commentDetail(id) + "like/" }
func commentUnlike(id int) string  { return commentDetail(id) + "unlike/" }

func userDetail(id int) string { return fmt.Sprintf("%s%d/", endpointUsers, id) }
