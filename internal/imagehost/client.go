package imagehost

import (
	"context"
	"encoding/base64"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/talkincode/toughmall/config"
)

// Client uploads product images to the external image hosting service and
// returns durable URLs. The service is a black box: one POST, one URL back.
type Client struct {
	apiURL string
	apiKey string
}

func NewClient(cfg config.ImageHostConfig) *Client {
	return &Client{apiURL: cfg.ApiUrl, apiKey: cfg.ApiKey}
}

// Enabled reports whether an upload endpoint is configured.
func (c *Client) Enabled() bool {
	return c.apiURL != ""
}

type uploadResp struct {
	Url   string `json:"url"`
	Error string `json:"error"`
}

// Upload sends the image bytes and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if !c.Enabled() {
		return "", errors.New("image host not configured")
	}

	var resp uploadResp
	err := gout.POST(c.apiURL).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + c.apiKey}).
		SetJSON(gout.H{
			"name":  filename,
			"image": base64.StdEncoding.EncodeToString(data),
		}).
		BindJSON(&resp).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "upload image")
	}
	if resp.Url == "" {
		return "", errors.Errorf("image host rejected upload: %s", resp.Error)
	}
	return resp.Url, nil
}
