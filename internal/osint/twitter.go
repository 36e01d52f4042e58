package osint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/glitchsec/osintkit/internal/model"
)

// Twitter wraps the twitter-v24 API on RapidAPI. The response mirrors
// Twitter's internal GraphQL shapes, so the interesting fields sit
// several envelopes deep.
type Twitter struct {
	c       *Client
	key     string
	baseURL string
}

// NewTwitter creates a Twitter provider using the shared client.
func NewTwitter(c *Client, key string) *Twitter {
	return &Twitter{
		c:       c,
		key:     key,
		baseURL: "https://twitter-v24.p.rapidapi.com",
	}
}

// Name returns the provider identifier used for caching and reports.
func (t *Twitter) Name() string { return "twitter" }

func (t *Twitter) header() http.Header {
	h := http.Header{}
	h.Set("x-rapidapi-key", t.key)
	if u, err := url.Parse(t.baseURL); err == nil {
		h.Set("x-rapidapi-host", u.Host)
	}
	return h
}

// twitterLegacy holds the pre-GraphQL user fields Twitter still nests
// under "legacy".
type twitterLegacy struct {
	Name                 string `json:"name"`
	ScreenName           string `json:"screen_name"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	FollowersCount       int    `json:"followers_count"`
	FriendsCount         int    `json:"friends_count"`
	StatusesCount        int    `json:"statuses_count"`
	CreatedAt            string `json:"created_at"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

// User looks up a Twitter/X account by username. A leading @ is
// stripped.
func (t *Twitter) User(ctx context.Context, username string) (*model.TwitterUser, error) {
	username = strings.TrimPrefix(username, "@")
	u := fmt.Sprintf("%s/user/details?username=%s", t.baseURL, url.QueryEscape(username))

	var raw struct {
		Data struct {
			User struct {
				Result struct {
					RestID         string        `json:"rest_id"`
					IsBlueVerified bool          `json:"is_blue_verified"`
					Legacy         twitterLegacy `json:"legacy"`
				} `json:"result"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := t.c.getJSON(ctx, t.Name(), u, t.header(), &raw); err != nil {
		return nil, err
	}

	r := raw.Data.User.Result
	if r.RestID == "" && r.Legacy.ScreenName == "" {
		return nil, fmt.Errorf("%w (twitter user %s)", ErrNotFound, username)
	}

	return &model.TwitterUser{
		ID:           r.RestID,
		Name:         r.Legacy.Name,
		Username:     r.Legacy.ScreenName,
		Bio:          r.Legacy.Description,
		Location:     r.Legacy.Location,
		Followers:    r.Legacy.FollowersCount,
		Following:    r.Legacy.FriendsCount,
		Tweets:       r.Legacy.StatusesCount,
		Verified:     r.IsBlueVerified,
		Created:      r.Legacy.CreatedAt,
		ProfileImage: r.Legacy.ProfileImageURLHTTPS,
	}, nil
}

// twitterSearch mirrors the timeline envelope the search endpoint
// returns. Only TimelineAddEntries instructions carry tweets.
type twitterSearch struct {
	Data struct {
		SearchByRawQuery struct {
			SearchTimeline struct {
				Timeline struct {
					Instructions []struct {
						Type    string `json:"type"`
						Entries []struct {
							Content struct {
								EntryType   string `json:"entryType"`
								ItemContent struct {
									TweetResults struct {
										Result struct {
											Legacy struct {
												FullText      string `json:"full_text"`
												FavoriteCount int    `json:"favorite_count"`
												RetweetCount  int    `json:"retweet_count"`
												CreatedAt     string `json:"created_at"`
											} `json:"legacy"`
											Core struct {
												UserResults struct {
													Result struct {
														Legacy struct {
															ScreenName string `json:"screen_name"`
														} `json:"legacy"`
													} `json:"result"`
												} `json:"user_results"`
											} `json:"core"`
										} `json:"result"`
									} `json:"tweet_results"`
								} `json:"itemContent"`
							} `json:"content"`
						} `json:"entries"`
					} `json:"instructions"`
				} `json:"timeline"`
			} `json:"search_timeline"`
		} `json:"search_by_raw_query"`
	} `json:"data"`
}

// Search returns up to count recent tweets matching the query.
func (t *Twitter) Search(ctx context.Context, query string, count int) ([]model.Tweet, error) {
	u := fmt.Sprintf("%s/search/search?query=%s&count=%d&type=Latest",
		t.baseURL, url.QueryEscape(query), count)

	var raw twitterSearch
	if err := t.c.getJSON(ctx, t.Name(), u, t.header(), &raw); err != nil {
		return nil, err
	}

	var tweets []model.Tweet
	for _, inst := range raw.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions {
		if inst.Type != "TimelineAddEntries" {
			continue
		}
		for _, entry := range inst.Entries {
			if entry.Content.EntryType != "TimelineTimelineItem" {
				continue
			}
			result := entry.Content.ItemContent.TweetResults.Result
			if result.Legacy.FullText == "" {
				continue
			}
			tweets = append(tweets, model.Tweet{
				Text:     result.Legacy.FullText,
				Author:   result.Core.UserResults.Result.Legacy.ScreenName,
				Likes:    result.Legacy.FavoriteCount,
				Retweets: result.Legacy.RetweetCount,
				Created:  result.Legacy.CreatedAt,
			})
			if len(tweets) >= count {
				return tweets, nil
			}
		}
	}
	return tweets, nil
}
