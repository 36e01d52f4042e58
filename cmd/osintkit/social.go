package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/report"
	"github.com/spf13/cobra"
)

// NewSocialCmd creates the social command group.
func NewSocialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Social media lookups (Twitter, Reddit)",
		Long: `Social looks up public social media activity.

Twitter subcommands go through the twitter-v24 API on RapidAPI and
require RAPIDAPI_KEY. Reddit uses the public JSON endpoints and needs
no key.`,
	}

	cmd.AddCommand(newTwitterCmd())
	cmd.AddCommand(newTweetsCmd())
	cmd.AddCommand(newRedditCmd())

	return cmd
}

// newTwitterCmd creates the social twitter subcommand.
func newTwitterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "twitter <username>",
		Short: "Look up a Twitter/X user profile",
		Long: `Twitter shows a user's public profile: bio, location, follower
counts, and account age. A leading @ is accepted and ignored.

Examples:
  osintkit social twitter jack`,
		Args: cobra.ExactArgs(1),
		RunE: runTwitterCmd,
	}
}

func runTwitterCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	key, err := cfg.Keys.RequireRapidAPI()
	if err != nil {
		return err
	}

	twitter := osint.NewTwitter(newProviderClient(cfg), key)
	user, err := twitter.User(ctx, cfg.Targets[0])
	if err != nil {
		return fmt.Errorf("twitter lookup failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, user)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	printTwitterUser(w, user)
	return nil
}

// printTwitterUser renders a Twitter profile for the terminal.
func printTwitterUser(w *report.ConsoleWriter, u *model.TwitterUser) {
	label := "@" + u.Username
	if u.Verified {
		label += " (verified)"
	}
	w.Infof("Twitter profile: %s", label)
	w.Field("Name", u.Name)
	w.Field("Bio", u.Bio)
	w.Field("Location", u.Location)
	w.Fieldf("Followers", "%d", u.Followers)
	w.Fieldf("Following", "%d", u.Following)
	w.Fieldf("Tweets", "%d", u.Tweets)
	w.Field("Created", u.Created)
}

// newTweetsCmd creates the social tweets subcommand.
func newTweetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tweets <query...>",
		Short: "Search recent tweets",
		Long: `Tweets searches recent tweets matching a query. Twitter search
operators work as usual.

Examples:
  osintkit social tweets "acme corp breach"
  osintkit social tweets from:janesmith42 --limit 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTweetsCmd,
	}
}

func runTweetsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	key, err := cfg.Keys.RequireRapidAPI()
	if err != nil {
		return err
	}

	query := strings.Join(cfg.Targets, " ")
	twitter := osint.NewTwitter(newProviderClient(cfg), key)

	tweets, err := twitter.Search(ctx, query, cfg.Limit)
	if err != nil {
		return fmt.Errorf("tweet search failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, tweets)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	if len(tweets) == 0 {
		w.Warnf("No tweets matched %q", query)
		return nil
	}
	w.Successf("%d tweets for %q", len(tweets), query)
	for _, t := range tweets {
		w.Resultf("@%s", t.Author)
		w.Field("Text", t.Text)
		w.Fieldf("Engagement", "%d likes, %d retweets", t.Likes, t.Retweets)
		w.Field("Posted", t.Created)
	}
	return nil
}

// newRedditCmd creates the social reddit subcommand.
func newRedditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reddit <username>",
		Short: "Look up a Reddit user's profile and activity",
		Long: `Reddit shows a user's karma, account age, recent submissions, and
the subreddits they are active in. Uses Reddit's public JSON
endpoints; no API key needed.

Examples:
  osintkit social reddit spez`,
		Args: cobra.ExactArgs(1),
		RunE: runRedditCmd,
	}
}

func runRedditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	reddit := osint.NewReddit(newProviderClient(cfg))
	user, err := reddit.User(ctx, cfg.Targets[0])
	if err != nil {
		return fmt.Errorf("reddit lookup failed: %w", err)
	}

	if cfg.JSONReport || cfg.MarkdownReport {
		return writeValue(cmd, cfg, user)
	}

	output, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w := report.NewConsoleWriter(output)
	printRedditUser(w, user)
	return nil
}

// printRedditUser renders a Reddit profile for the terminal.
func printRedditUser(w *report.ConsoleWriter, u *model.RedditUser) {
	w.Infof("Reddit profile: u/%s", u.Username)
	w.Fieldf("Karma", "%d (%d comment, %d link)", u.TotalKarma, u.CommentKarma, u.LinkKarma)
	if u.CreatedUTC > 0 {
		created := time.Unix(int64(u.CreatedUTC), 0).UTC()
		w.Field("Created", created.Format("2006-01-02"))
	}
	if u.IsMod {
		w.Field("Moderator", "yes")
	}

	if len(u.RecentPosts) > 0 {
		w.Infof("Recent posts")
		for _, p := range u.RecentPosts {
			w.Itemf("[r/%s] %s (%d points)", p.Subreddit, p.Title, p.Score)
		}
	}

	if len(u.ActiveSubreddits) > 0 {
		w.Field("Active in", strings.Join(u.ActiveSubreddits, ", "))
	}
}
