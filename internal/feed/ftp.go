package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
	log "github.com/sirupsen/logrus"

	"stockfeed/importer/internal/config"
	"stockfeed/importer/internal/domain"
)

type ftpFetcher struct {
	addr     string
	user     string
	password string
	timeout  time.Duration
}

// NewFTPFetcher creates a fetcher that downloads the feed over FTP. Each
// Fetch opens a fresh session with an explicit dial timeout and closes it
// before returning.
func NewFTPFetcher(cfg config.FeedConfig) Fetcher {
	return &ftpFetcher{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		user:     cfg.User,
		password: cfg.Password,
		timeout:  time.Duration(cfg.Timeout) * time.Second,
	}
}

func (f *ftpFetcher) Fetch(ctx context.Context, fileName string) ([]byte, error) {
	conn, err := ftp.Dial(f.addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(f.timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", domain.ErrFetch, f.addr, err)
	}
	defer func() {
		if quitErr := conn.Quit(); quitErr != nil {
			log.Warnf("Failed to close FTP session: %v", quitErr)
		}
	}()

	if err := conn.Login(f.user, f.password); err != nil {
		return nil, fmt.Errorf("%w: login rejected for user %s: %v", domain.ErrFetch, f.user, err)
	}

	resp, err := conn.Retr(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve %s: %v", domain.ErrFetch, fileName, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrFetch, fileName, err)
	}

	log.Debugf("Fetched %s over FTP (%d bytes)", fileName, len(data))
	return data, nil
}
