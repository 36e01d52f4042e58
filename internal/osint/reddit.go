package osint

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/glitchsec/osintkit/internal/model"
)

// Caps on recent-activity lists pulled from Reddit.
const (
	maxRedditPosts      = 5
	maxActiveSubreddits = 10
)

// Reddit wraps Reddit's public JSON endpoints. No API key is needed,
// but Reddit drops requests with the default Go User-Agent, so the
// shared client's custom agent matters here.
type Reddit struct {
	c       *Client
	baseURL string
}

// NewReddit creates a Reddit provider using the shared client.
func NewReddit(c *Client) *Reddit {
	return &Reddit{
		c:       c,
		baseURL: "https://www.reddit.com",
	}
}

// Name returns the provider identifier used for caching and reports.
func (r *Reddit) Name() string { return "reddit" }

// redditAbout is the subset of a user's about.json we consume.
type redditAbout struct {
	Data struct {
		Name         string  `json:"name"`
		CreatedUTC   float64 `json:"created_utc"`
		TotalKarma   int     `json:"total_karma"`
		CommentKarma int     `json:"comment_karma"`
		LinkKarma    int     `json:"link_karma"`
		IsMod        bool    `json:"is_mod"`
	} `json:"data"`
}

// redditListing is the generic listing envelope shared by the
// submitted and comments feeds.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Subreddit string `json:"subreddit"`
				Score     int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// User returns a Reddit account's profile and recent activity.
// The profile lookup is authoritative; the posts and comments feeds
// are best effort and their failures are ignored.
func (r *Reddit) User(ctx context.Context, username string) (*model.RedditUser, error) {
	base := r.baseURL + "/user/" + url.PathEscape(username)

	var about redditAbout
	if err := r.c.getJSON(ctx, r.Name(), base+"/about.json", nil, &about); err != nil {
		return nil, err
	}

	user := &model.RedditUser{
		Username:     about.Data.Name,
		CreatedUTC:   about.Data.CreatedUTC,
		TotalKarma:   about.Data.TotalKarma,
		CommentKarma: about.Data.CommentKarma,
		LinkKarma:    about.Data.LinkKarma,
		IsMod:        about.Data.IsMod,
	}

	var submitted redditListing
	if err := r.c.getJSON(ctx, r.Name(), fmt.Sprintf("%s/submitted.json?limit=%d", base, maxRedditPosts), nil, &submitted); err == nil {
		for i, child := range submitted.Data.Children {
			if i >= maxRedditPosts {
				break
			}
			user.RecentPosts = append(user.RecentPosts, model.RedditPost{
				Title:     child.Data.Title,
				Subreddit: child.Data.Subreddit,
				Score:     child.Data.Score,
			})
		}
	}

	var comments redditListing
	if err := r.c.getJSON(ctx, r.Name(), fmt.Sprintf("%s/comments.json?limit=%d", base, maxRedditPosts), nil, &comments); err == nil {
		seen := make(map[string]bool)
		for _, child := range comments.Data.Children {
			sub := child.Data.Subreddit
			if sub == "" || seen[sub] {
				continue
			}
			seen[sub] = true
			user.ActiveSubreddits = append(user.ActiveSubreddits, sub)
		}
		sort.Strings(user.ActiveSubreddits)
		if len(user.ActiveSubreddits) > maxActiveSubreddits {
			user.ActiveSubreddits = user.ActiveSubreddits[:maxActiveSubreddits]
		}
	}

	return user, nil
}
