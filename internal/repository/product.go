package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockfeed/importer/internal/domain"
)

type ProductRepository interface {
	EnsureSchema(ctx context.Context, productTable string) error
	ReplaceProducts(ctx context.Context, productTable string, rows []domain.ProductRow) error
	AppendRunSummary(ctx context.Context, summary domain.RunSummary) error
}

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{
		db: db,
	}
}

var productColumns = []string{
	"onze_sku",
	"sku",
	"ean",
	"id",
	"merk",
	"omschrijving",
	"category",
	"eigenschappen",
	"voorraad",
	"inkoop_prijs",
	"advies_prijs",
	"verpakings_eenheid",
	"gewicht",
	"url_plaatje",
	"korting",
	"import_date",
}

// EnsureSchema creates the supplier product table and the shared import log
// if they do not exist yet.
func (r *productRepository) EnsureSchema(ctx context.Context, productTable string) error {
	createProducts := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		onze_sku           TEXT PRIMARY KEY,
		sku                TEXT NOT NULL,
		ean                BIGINT NOT NULL,
		id                 TEXT,
		merk               TEXT,
		omschrijving       TEXT,
		category           TEXT,
		eigenschappen      TEXT,
		voorraad           INTEGER NOT NULL,
		inkoop_prijs       NUMERIC(10,2) NOT NULL,
		advies_prijs       NUMERIC(10,2),
		verpakings_eenheid INTEGER NOT NULL,
		gewicht            TEXT,
		url_plaatje        TEXT,
		korting            NUMERIC(10,2),
		import_date        TIMESTAMPTZ NOT NULL
	)`, pgx.Identifier{productTable}.Sanitize())

	if _, err := r.db.Exec(ctx, createProducts); err != nil {
		return fmt.Errorf("failed to create product table %s: %w", productTable, err)
	}

	createLog := `
	CREATE TABLE IF NOT EXISTS import_log (
		id          BIGSERIAL PRIMARY KEY,
		supplier    TEXT NOT NULL,
		import_date TIMESTAMPTZ NOT NULL,
		item_count  INTEGER NOT NULL,
		total_stock INTEGER NOT NULL,
		total_price NUMERIC(14,2) NOT NULL
	)`

	if _, err := r.db.Exec(ctx, createLog); err != nil {
		return fmt.Errorf("failed to create import log table: %w", err)
	}

	return nil
}

// ReplaceProducts swaps the supplier's table contents for this run's rows in
// one transaction. Each run is a full snapshot, so replace, not upsert.
func (r *productRepository) ReplaceProducts(ctx context.Context, productTable string, rows []domain.ProductRow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", domain.ErrDeliver, err)
	}
	defer tx.Rollback(ctx)

	table := pgx.Identifier{productTable}

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table.Sanitize())); err != nil {
		return fmt.Errorf("%w: failed to clear product table %s: %v", domain.ErrDeliver, productTable, err)
	}

	_, err = tx.CopyFrom(ctx, table, productColumns, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		row := rows[i]
		return []any{
			row.OnzeSKU,
			row.SKU,
			row.EAN,
			row.ID,
			row.Merk,
			row.Omschrijving,
			row.Category,
			row.Eigenschappen,
			row.Voorraad,
			row.InkoopPrijs,
			row.AdviesPrijs,
			row.VerpakingsEenheid,
			row.Gewicht,
			row.URLPlaatje,
			row.Korting,
			row.ImportDate,
		}, nil
	}))
	if err != nil {
		return fmt.Errorf("%w: failed to insert product rows: %v", domain.ErrDeliver, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit product replacement: %v", domain.ErrDeliver, err)
	}

	return nil
}

// AppendRunSummary adds one row to the shared import log.
func (r *productRepository) AppendRunSummary(ctx context.Context, summary domain.RunSummary) error {
	query := `
	INSERT INTO import_log (supplier, import_date, item_count, total_stock, total_price)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		summary.Supplier,
		summary.ImportDate,
		summary.ItemCount,
		summary.TotalStock,
		summary.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to append run summary: %v", domain.ErrDeliver, err)
	}

	return nil
}
