// Package analyzer turns a username into a profile summary and asks the
// completion endpoint for a roast of it.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"profile-roast/internal/llm"
	"profile-roast/internal/metrics"
	"profile-roast/internal/models"
	"profile-roast/internal/textclean"
)

// DefaultMaxTweets is how many posts are sent to the model.
const DefaultMaxTweets = 10

// FallbackCommentary is returned when the completion call fails.
const FallbackCommentary = "Could not complete the analysis: the profile text may contain unsupported characters or the completion API call failed."

// ErrNoUserID is returned when the provider profile carries no id.
var ErrNoUserID = errors.New("profile has no user id")

// ProfileSource is the provider API, normally *xapi.Client.
type ProfileSource interface {
	UserInfo(ctx context.Context, username string) (map[string]any, error)
	UserTweets(ctx context.Context, userID, cursor string) (map[string]any, error)
}

// Completer is the chat completion API, normally *llm.Client.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Notifier receives analysis lifecycle events, normally *realtime.Hub.
type Notifier interface {
	Broadcast(subject string, message []byte)
}

// Options configures an Analyzer.
type Options struct {
	MaxTweets int
	Notifier  Notifier
	Logger    *zap.Logger
}

// Analyzer wires the provider and completion clients together.
type Analyzer struct {
	source    ProfileSource
	completer Completer
	notifier  Notifier
	maxTweets int
	log       *zap.Logger
	now       func() time.Time
}

// New returns an Analyzer.
func New(source ProfileSource, completer Completer, opts Options) *Analyzer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := opts.MaxTweets
	if limit <= 0 {
		limit = DefaultMaxTweets
	}
	return &Analyzer{
		source:    source,
		completer: completer,
		notifier:  opts.Notifier,
		maxTweets: limit,
		log:       log.Named("analyzer"),
		now:       time.Now,
	}
}

// FetchProfile collects the cleaned bio and the most recent posts of username.
// The pinned post, if any, comes first.
func (a *Analyzer) FetchProfile(ctx context.Context, username string) (models.Profile, error) {
	a.log.Info("fetching profile", zap.String("username", username))

	start := time.Now()
	info, err := a.source.UserInfo(ctx, username)
	if err != nil {
		return models.Profile{}, fmt.Errorf("user info for %s: %w", username, err)
	}
	infoTook := time.Since(start)

	userID := stringField(info, "id")
	if userID == "" {
		return models.Profile{}, fmt.Errorf("%w: %s", ErrNoUserID, username)
	}

	start = time.Now()
	page, err := a.source.UserTweets(ctx, userID, "")
	if err != nil {
		return models.Profile{}, fmt.Errorf("tweets for %s: %w", username, err)
	}
	tweetsTook := time.Since(start)

	a.log.Info("profile fetched",
		zap.String("username", username),
		zap.Duration("user_info_took", infoTook),
		zap.Duration("tweets_took", tweetsTook))

	return models.Profile{
		Username:    username,
		Description: textclean.Clean(stringField(info, "description")),
		Tweets:      a.selectTweets(page),
	}, nil
}

func (a *Analyzer) selectTweets(page map[string]any) []string {
	tweets := make([]string, 0, a.maxTweets)

	if pinned, ok := page["pin_tweet"].(map[string]any); ok {
		if text, ok := pinned["text"].(string); ok {
			tweets = append(tweets, textclean.Clean(text))
		}
	}

	items, _ := page["tweets"].([]any)
	for _, item := range items {
		tweet, ok := item.(map[string]any)
		if !ok || tweet["type"] != "tweet" {
			continue
		}
		if text, ok := tweet["text"].(string); ok {
			tweets = append(tweets, textclean.Clean(text))
		}
	}

	if len(tweets) > a.maxTweets {
		tweets = tweets[:a.maxTweets]
	}
	return tweets
}

// Analyze asks the model for commentary on profile. A failed completion is
// logged and replaced by FallbackCommentary; degraded reports that case.
func (a *Analyzer) Analyze(ctx context.Context, profile models.Profile) (commentary string, degraded bool) {
	messages := BuildPrompt(profile)
	out, err := a.completer.Complete(ctx, messages)
	if err != nil {
		a.log.Error("analysis failed",
			zap.Error(err),
			zap.String("system_prompt", messages[0].Content),
			zap.String("user_prompt", messages[1].Content))
		return FallbackCommentary, true
	}
	return out, false
}

// Run fetches, analyzes and reports one username. subject receives the
// lifecycle events; it may be empty when nobody listens.
func (a *Analyzer) Run(ctx context.Context, subject, username string) (models.Analysis, error) {
	runID := uuid.NewString()
	a.notify(subject, "analysis_started", runID, username)

	profile, err := a.FetchProfile(ctx, username)
	if err != nil {
		metrics.Analyses.WithLabelValues("error").Inc()
		a.notify(subject, "analysis_failed", runID, username)
		return models.Analysis{}, err
	}

	a.log.Info("analyzing profile",
		zap.String("username", username),
		zap.Int("tweets", len(profile.Tweets)))
	commentary, degraded := a.Analyze(ctx, profile)

	result := "ok"
	if degraded {
		result = "degraded"
	}
	metrics.Analyses.WithLabelValues(result).Inc()
	a.notify(subject, "analysis_completed", runID, username)

	return models.Analysis{
		ID:         runID,
		Profile:    profile,
		Commentary: commentary,
		Degraded:   degraded,
		CreatedAt:  a.now().UTC(),
	}, nil
}

func (a *Analyzer) notify(subject, eventType, runID, username string) {
	if a.notifier == nil || subject == "" {
		return
	}
	evt := map[string]any{
		"type":     eventType,
		"runId":    runID,
		"username": username,
		"version":  1,
	}
	if bytes, err := sonic.Marshal(evt); err == nil {
		a.notifier.Broadcast(subject, bytes)
	}
}

// stringField reads m[key] as a string. Numeric ids are formatted
// without exponent.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
