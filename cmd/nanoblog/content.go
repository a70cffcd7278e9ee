package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/nanobanana/nanoblog/internal/content"
)

func newListCmd() *cobra.Command {
	var (
		category string
		locale   string
		tags     []string
		featured bool
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("loading posts: %w", err)
			}

			f := content.Filter{
				Tags:      tags,
				Featured:  featured,
				Draft:     content.ExcludeDrafts(),
				SortBy:    content.SortBy(sortBy),
				SortOrder: content.SortOrder(order),
			}
			if category != "" {
				f.Category = content.ParseCategory(category)
			}
			if locale != "" {
				f.Locale = content.Locale(locale)
			}

			posts := env.store.Filter(f)
			if len(posts) == 0 {
				fmt.Println("No posts")
				return nil
			}
			for _, p := range posts {
				printSummaryLine(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (blog, projects, life, notes)")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Language (en, zh)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Filter by tag (repeatable, matches any)")
	cmd.Flags().BoolVarP(&featured, "featured", "f", false, "Featured posts only")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key (date, popularity, readingTime, title)")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (asc, desc)")
	return cmd
}

func newReadCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "read <slug>",
		Short: "Render one post as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("loading posts: %w", err)
			}

			post, err := env.store.PostBySlug(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching %q: %w", args[0], err)
			}
			env.store.IncrementViews(post.Slug)

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}

			body := post.Content
			if body == "" {
				body = post.Description
			}
			md := fmt.Sprintf("# %s\n\n*%s · %d min read*\n\n%s\n",
				post.Title, post.Date.Format("2006-01-02"), post.ReadingTime, body)

			out, err := renderer.Render(md)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap width")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts, falling back to the local filter when offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("loading posts: %w", err)
			}

			env.session.SetQuery(strings.Join(args, " "))
			result := env.session.Run(cmd.Context())

			suffix := ""
			if result.Fallback {
				suffix = " (local filter)"
			}
			fmt.Printf("%d result(s)%s\n", result.Total, suffix)
			for _, p := range result.Posts {
				printSummaryLine(p)
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("loading posts: %w", err)
			}

			posts := env.store.Filter(content.Filter{Draft: content.ExcludeDrafts()})
			byCategory := map[content.Category]int{}
			for _, p := range posts {
				byCategory[p.Category]++
			}

			fmt.Printf("Posts:    %d\n", len(posts))
			for _, c := range []content.Category{content.CategoryBlog, content.CategoryProjects, content.CategoryLife, content.CategoryNotes} {
				if n := byCategory[c]; n > 0 {
					fmt.Printf("  %-9s %d\n", string(c)+":", n)
				}
			}
			fmt.Printf("Tags:     %d\n", len(env.store.AllTags()))

			stats := env.store.ProjectStats()
			if stats.Total > 0 {
				fmt.Printf("Projects: %d (%d stars, %d forks)\n",
					stats.Total, stats.TotalStars, stats.TotalForks)
			}

			// Server-wide numbers need an admin session; skip quietly
			// for anonymous readers.
			if overview, err := env.services.Stats.Overview(cmd.Context()); err == nil {
				fmt.Printf("Server:   %d articles, %d comments, %d views\n",
					overview.TotalArticles, overview.TotalComments, overview.TotalViews)
			}
			return nil
		},
	}
}

func printSummaryLine(p content.Summary) {
	marker := " "
	if p.Featured {
		marker = "★"
	}
	line := fmt.Sprintf("%s %-30s %s  %s", marker, p.Slug, p.Date.Format("2006-01-02"), p.Title)
	if len(p.Tags) > 0 {
		line += "  [" + strings.Join(p.Tags, ", ") + "]"
	}
	fmt.Println(line)
}
