package model

// TwitterUser is the reshaped twitter-v24 user details result.
type TwitterUser struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`

	Followers int `json:"followers"`
	Following int `json:"following"`
	Tweets    int `json:"tweets"`

	Verified bool `json:"verified,omitempty"`

	// Created is the account creation date in Twitter's native format
	// ("Mon Jan 02 15:04:05 -0700 2006").
	Created string `json:"created,omitempty"`

	ProfileImage string `json:"profile_image,omitempty"`
}

// Tweet is a single tweet from a twitter-v24 search.
type Tweet struct {
	Text     string `json:"text"`
	Author   string `json:"author,omitempty"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
	Created  string `json:"created,omitempty"`
}

// RedditUser is the reshaped Reddit user profile with recent activity.
type RedditUser struct {
	Username string `json:"username"`

	// CreatedUTC is the account creation time as a Unix timestamp,
	// as Reddit reports it.
	CreatedUTC float64 `json:"created_utc,omitempty"`

	TotalKarma   int  `json:"total_karma"`
	CommentKarma int  `json:"comment_karma"`
	LinkKarma    int  `json:"link_karma"`
	IsMod        bool `json:"is_mod,omitempty"`

	// RecentPosts are the user's most recent submissions.
	RecentPosts []RedditPost `json:"recent_posts,omitempty"`

	// ActiveSubreddits are subreddits the user recently commented in,
	// deduplicated.
	ActiveSubreddits []string `json:"active_subreddits,omitempty"`
}

// RedditPost is a single Reddit submission.
type RedditPost struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
}
