package feed

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"

	"stockfeed/importer/internal/config"
	"stockfeed/importer/internal/domain"
)

type httpFetcher struct {
	baseURL    string
	httpClient *resty.Client
}

// NewHTTPFetcher creates a fetcher for suppliers that expose the feed over
// HTTP(S) instead of FTP.
func NewHTTPFetcher(cfg config.FeedConfig) Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	if cfg.User != "" {
		basic := base64.StdEncoding.EncodeToString([]byte(cfg.User + ":" + cfg.Password))
		client.SetHeader("Authorization", "Basic "+basic)
	}

	return &httpFetcher{
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, fileName string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", f.baseURL, fileName)

	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", domain.ErrFetch, url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP error for %s: %d %s", domain.ErrFetch, url, resp.StatusCode(), resp.Status())
	}

	data := resp.Bytes()
	log.Debugf("Fetched %s over HTTP (%d bytes)", fileName, len(data))
	return data, nil
}
