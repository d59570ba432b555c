package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"stockfeed/importer/internal/domain"
	"stockfeed/importer/internal/export"
	"stockfeed/importer/internal/feed"
	"stockfeed/importer/internal/pipeline"
	"stockfeed/importer/internal/repository"
	"stockfeed/importer/internal/state"
	"stockfeed/importer/internal/storage"
)

const fileStampLayout = "20060102-150405"

type Service struct {
	profile      domain.SupplierProfile
	fetcher      feed.Fetcher
	pipeline     *pipeline.Pipeline
	repository   repository.ProductRepository
	uploader     storage.Uploader
	stateManager state.RunStateManager
	exportDir    string
}

func NewService(
	profile domain.SupplierProfile,
	fetcher feed.Fetcher,
	repository repository.ProductRepository,
	uploader storage.Uploader,
	stateManager state.RunStateManager,
	exportDir string,
) *Service {
	return &Service{
		profile:      profile,
		fetcher:      fetcher,
		pipeline:     pipeline.New(profile),
		repository:   repository,
		uploader:     uploader,
		stateManager: stateManager,
		exportDir:    exportDir,
	}
}

// Run executes one full import: fetch, parse, transform, project, deliver.
// Every stage hands its artifact to the next by value; the filesystem is
// only touched for the final exports. Any error aborts the run.
func (s *Service) Run(ctx context.Context) error {
	started := time.Now()
	log.Infof("🔄 Importing feed %s for supplier %s", s.profile.FeedFile, s.profile.Name)

	data, err := s.fetcher.Fetch(ctx, s.profile.FeedFile)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	log.Infof("✅ Fetched feed %s (%d bytes)", s.profile.FeedFile, len(data))

	s.checkUnchangedFeed(ctx, data)

	raws, err := feed.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	records, stats := s.pipeline.Run(raws)
	log.Infof("✅ Transformed %d rows: %d kept, %d duplicates, %d unparseable, %d filtered",
		stats.RowsIn, stats.RowsOut, stats.Duplicates, stats.Skipped, stats.Filtered)

	if err := s.deliver(ctx, records, started); err != nil {
		return err
	}

	if err := s.stateManager.SetLastRun(ctx, s.profile.Name, state.RunState{
		FinishedAt:   time.Now(),
		FeedChecksum: checksum(data),
	}); err != nil {
		log.Warnf("Failed to record run state: %v", err)
	}

	log.Infof("✅ Import for %s finished in %s", s.profile.Name, time.Since(started).Round(time.Millisecond))
	return nil
}

func (s *Service) deliver(ctx context.Context, records []domain.Record, importDate time.Time) error {
	catalog, err := export.CatalogCSV(records)
	if err != nil {
		return fmt.Errorf("failed to build catalog export: %w", err)
	}

	prices, err := export.PriceCSV(records)
	if err != nil {
		return fmt.Errorf("failed to build price export: %w", err)
	}

	catalogName := fmt.Sprintf("%s_P_%s.csv", s.profile.Name, importDate.Format(fileStampLayout))
	priceName := fmt.Sprintf("%s_Vendit_price_kaal.csv", s.profile.Name)

	if err := s.writeExport(catalogName, catalog); err != nil {
		return err
	}
	if err := s.writeExport(priceName, prices); err != nil {
		return err
	}

	objectKey := storage.ObjectKey(s.profile.StorePath, s.profile.Name, catalogName)
	if err := s.uploader.Upload(ctx, objectKey, catalog); err != nil {
		return fmt.Errorf("failed to deliver catalog export: %w", err)
	}

	rows := export.ProductRows(records, importDate)
	if err := s.repository.ReplaceProducts(ctx, s.profile.ProductTable, rows); err != nil {
		return fmt.Errorf("failed to deliver product rows: %w", err)
	}
	log.Infof("✅ Replaced %d rows in %s", len(rows), s.profile.ProductTable)

	summary := summarize(s.profile.Name, records, importDate)
	if err := s.repository.AppendRunSummary(ctx, summary); err != nil {
		return fmt.Errorf("failed to append run summary: %w", err)
	}
	log.Infof("✅ Logged run summary: %d items, %d stock, %s total",
		summary.ItemCount, summary.TotalStock, summary.TotalPrice.StringFixed(2))

	return nil
}

func (s *Service) writeExport(fileName string, data []byte) error {
	path := filepath.Join(s.exportDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write export %s: %v", domain.ErrDeliver, path, err)
	}
	log.Debugf("Wrote export %s (%d bytes)", path, len(data))
	return nil
}

// checkUnchangedFeed warns when the supplier served the same bytes as the
// previous run. The run continues either way.
func (s *Service) checkUnchangedFeed(ctx context.Context, data []byte) {
	lastRun, err := s.stateManager.GetLastRun(ctx, s.profile.Name)
	if err != nil {
		log.Warnf("Failed to read last run state: %v", err)
		return
	}
	if lastRun != nil && lastRun.FeedChecksum == checksum(data) {
		log.Warnf("⚠️ Feed is identical to the run of %s", lastRun.FinishedAt.Format(time.RFC3339))
	}
}

func summarize(supplier string, records []domain.Record, importDate time.Time) domain.RunSummary {
	totalStock := 0
	totalPrice := decimal.Zero
	for _, r := range records {
		totalStock += r.Stock
		totalPrice = totalPrice.Add(r.PurchasePrice)
	}
	return domain.RunSummary{
		Supplier:   supplier,
		ImportDate: importDate,
		ItemCount:  len(records),
		TotalStock: totalStock,
		TotalPrice: totalPrice,
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
