package suggest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/toughmall/config"
)

// Client talks to the recommendation collaborator: it posts a behavior
// summary (recent keywords) and gets back keyword-tagged suggestions used
// only to narrow a product search.
type Client struct {
	apiURL  string
	timeout time.Duration
}

func NewClient(cfg config.SuggestConfig) *Client {
	return &Client{apiURL: cfg.ApiUrl, timeout: 3 * time.Second}
}

// Enabled reports whether the collaborator is configured.
func (c *Client) Enabled() bool {
	return c.apiURL != ""
}

// Suggestion is one keyword tag with a relevance score.
type Suggestion struct {
	Keyword string  `mapstructure:"keyword"`
	Score   float64 `mapstructure:"score"`
}

// Keywords returns suggestion keywords ordered by descending score. The
// collaborator response shape is loose, so it is decoded through a generic
// map and mapped explicitly.
func (c *Client) Keywords(ctx context.Context, recent []string) ([]string, error) {
	if !c.Enabled() {
		return nil, errors.New("suggestion service not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var raw map[string]interface{}
	err := gout.POST(c.apiURL).
		WithContext(ctx).
		SetJSON(gout.H{"keywords": recent}).
		BindJSON(&raw).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "query suggestion service")
	}

	var payload struct {
		Suggestions []Suggestion `mapstructure:"suggestions"`
	}
	if err := mapstructure.Decode(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "decode suggestion response")
	}

	sort.SliceStable(payload.Suggestions, func(i, j int) bool {
		return payload.Suggestions[i].Score > payload.Suggestions[j].Score
	})

	keywords := make([]string, 0, len(payload.Suggestions))
	for _, s := range payload.Suggestions {
		kw := strings.TrimSpace(s.Keyword)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		zap.L().Debug("suggestion service returned no keywords")
	}
	return keywords, nil
}
