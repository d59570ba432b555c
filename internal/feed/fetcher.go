package feed

import (
	"context"
	"fmt"

	"stockfeed/importer/internal/config"
)

// Fetcher retrieves the raw bytes of one named feed file from the supplier.
type Fetcher interface {
	Fetch(ctx context.Context, fileName string) ([]byte, error)
}

// NewFetcher builds the fetcher matching the configured feed protocol.
func NewFetcher(cfg config.FeedConfig) (Fetcher, error) {
	switch cfg.Protocol {
	case "ftp":
		return NewFTPFetcher(cfg), nil
	case "http":
		return NewHTTPFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported feed protocol: %q", cfg.Protocol)
	}
}
