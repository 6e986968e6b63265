package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// CardCache is the persistent read-through store behind the card API client.
// Entries expire by TTL rather than invalidation; card data for a printed set
// changes rarely.
type CardCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCardCache wraps an opened database. ttl <= 0 disables expiry.
func NewCardCache(db *sql.DB, ttl time.Duration) *CardCache {
	return &CardCache{db: db, ttl: ttl}
}

// GetSetCards returns the cached card list for a set. The second return is
// false when the set is absent or its entry has expired.
func (c *CardCache) GetSetCards(ctx context.Context, setCode string) ([]models.Card, bool, error) {
	var blob string
	var fetchedAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT cards, fetched_at FROM set_cache WHERE set_code = ?`, setCode,
	).Scan(&blob, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read set cache: %w", err)
	}
	if c.ttl > 0 && time.Since(fetchedAt) > c.ttl {
		return nil, false, nil
	}
	var cards []models.Card
	if err := json.Unmarshal([]byte(blob), &cards); err != nil {
		return nil, false, fmt.Errorf("decode set cache %s: %w", setCode, err)
	}
	return cards, true, nil
}

// PutSetCards stores or replaces the card list for a set.
func (c *CardCache) PutSetCards(ctx context.Context, setCode string, cards []models.Card) error {
	blob, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode set cache %s: %w", setCode, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO set_cache (set_code, cards, card_count, fetched_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(set_code) DO UPDATE SET
		   cards = excluded.cards,
		   card_count = excluded.card_count,
		   fetched_at = excluded.fetched_at`,
		setCode, string(blob), len(cards))
	if err != nil {
		return fmt.Errorf("write set cache: %w", err)
	}
	return nil
}

// CachedSet is one admin-facing cache directory entry.
type CachedSet struct {
	SetCode   string    `json:"set"`
	CardCount int       `json:"card_count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ListSets returns the cache directory, newest first.
func (c *CardCache) ListSets(ctx context.Context) ([]CachedSet, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT set_code, card_count, fetched_at FROM set_cache ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list set cache: %w", err)
	}
	defer rows.Close()

	var out []CachedSet
	for rows.Next() {
		var s CachedSet
		if err := rows.Scan(&s.SetCode, &s.CardCount, &s.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan set cache row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PurgeSet drops one set's cache entry. Reports whether an entry existed.
func (c *CardCache) PurgeSet(ctx context.Context, setCode string) (bool, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM set_cache WHERE set_code = ?`, setCode)
	if err != nil {
		return false, fmt.Errorf("purge set cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetProbe reads a remembered asset-existence answer.
func (c *CardCache) GetProbe(ctx context.Context, url string) (exists, found bool, err error) {
	var ok int
	err = c.db.QueryRowContext(ctx,
		`SELECT exists_ok FROM asset_probes WHERE url = ?`, url).Scan(&ok)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read asset probe: %w", err)
	}
	return ok != 0, true, nil
}

// PutProbe stores an asset-existence answer.
func (c *CardCache) PutProbe(ctx context.Context, url string, exists bool) error {
	v := 0
	if exists {
		v = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO asset_probes (url, exists_ok, checked_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(url) DO UPDATE SET
		   exists_ok = excluded.exists_ok,
		   checked_at = excluded.checked_at`,
		url, v)
	if err != nil {
		return fmt.Errorf("write asset probe: %w", err)
	}
	return nil
}
