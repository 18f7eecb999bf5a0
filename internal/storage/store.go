package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/tagger"
)

// UpsertOutcome describes what an Upsert did with the incoming signal.
type UpsertOutcome string

const (
	// OutcomeCreated means the signal was persisted for the first time.
	OutcomeCreated UpsertOutcome = "created"
	// OutcomeRefreshed means the link was already known with the same
	// content; only the seen timestamps and repost count moved.
	OutcomeRefreshed UpsertOutcome = "refreshed"
	// OutcomeUpdated means the link was known but the content changed;
	// the enriched fields were replaced in place.
	OutcomeUpdated UpsertOutcome = "updated"
	// OutcomeRepost means the content was already known under a different
	// link; the alias got its own row and the canonical row absorbed the
	// repost evidence.
	OutcomeRepost UpsertOutcome = "repost"
)

// Stats summarises the store for the stats command and endpoint.
type Stats struct {
	TotalSignals int            `json:"total_signals"`
	DBSizeBytes  int64          `json:"db_size_bytes"`
	BySource     map[string]int `json:"by_source"`
}

// Store is the deduplicating signal store. Safe for concurrent use; writes
// serialise on the single writer connection.
type Store struct {
	writer *sqlx.DB
	reader *sqlx.DB
	path   string
	log    logger.Logger
}

// Open opens (creating if needed) the store at path and its read-only
// analytics companion connection.
func Open(path string, log logger.Logger) (*Store, error) {
	writer, err := openWriter(path)
	if err != nil {
		return nil, err
	}

	reader, err := openReader(path)
	if err != nil {
		_ = writer.Close()
		return nil, err
	}

	log.Info("store opened", logger.String("path", path))

	return &Store{writer: writer, reader: reader, path: path, log: log}, nil
}

// Close closes both connections. The writer pool drains first, so an
// in-flight upsert completes before the database handle goes away.
func (s *Store) Close() error {
	errWriter := s.writer.Close()
	errReader := s.reader.Close()
	if errWriter != nil {
		return fmt.Errorf("close writer: %w", errWriter)
	}
	if errReader != nil {
		return fmt.Errorf("close reader: %w", errReader)
	}
	return nil
}

// Reader exposes the read-only connection for the analytics queries.
func (s *Store) Reader() *sqlx.DB {
	return s.reader
}

// IsKnown reports whether a link is already stored. Scrapers call this
// before fetching a detail page.
func (s *Store) IsKnown(ctx context.Context, link string) (bool, error) {
	var one int
	err := s.reader.QueryRowxContext(ctx, `SELECT 1 FROM signals WHERE link = ?`, link).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check link: %w", err)
	}
	return true, nil
}

// signalHead is the observation-history slice of a row, enough to decide
// the upsert branch and recompute the ghost score.
type signalHead struct {
	Link        string    `db:"link"`
	ContentHash string    `db:"content_hash"`
	FirstSeenAt time.Time `db:"first_seen_at"`
	RepostCount int       `db:"repost_count"`
}

// Upsert persists an enriched signal with dedup semantics. A known link
// with unchanged content is refreshed, a known link with changed content is
// updated in place, known content under a new link is stored as an alias
// row and counted as a repost on the canonical row, and anything else is
// inserted. first_seen_at never moves after creation.
func (s *Store) Upsert(ctx context.Context, sig domain.EnrichedSignal) (UpsertOutcome, error) {
	now := sig.LastSeenAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var existing signalHead
	err := s.writer.GetContext(ctx, &existing,
		`SELECT link, content_hash, first_seen_at, repost_count FROM signals WHERE link = ?`, sig.Link)

	switch {
	case err == nil && existing.ContentHash == sig.ContentHash:
		return s.refresh(ctx, sig.Link, existing.FirstSeenAt, existing.RepostCount+1, now)

	case err == nil:
		// Same link, new content. Replace the enriched fields but keep the
		// observation history.
		sig.FirstSeenAt = existing.FirstSeenAt
		sig.RepostCount = existing.RepostCount
		sig.LastSeenAt = now
		sig.GhostScore = tagger.GhostScore(sig.RepostCount, sig.FirstSeenAt, now)
		if updateErr := s.updateByLink(ctx, sig); updateErr != nil {
			return "", updateErr
		}
		// The rewritten content may match an advert already stored under
		// another link; that is repost evidence for the canonical row.
		canonical, found, lookErr := s.canonicalForHash(ctx, sig.ContentHash, sig.Link)
		if lookErr != nil {
			return "", lookErr
		}
		if found {
			if repostErr := s.recordRepost(ctx, canonical, now); repostErr != nil {
				return "", repostErr
			}
			return OutcomeRepost, nil
		}
		return OutcomeUpdated, nil

	case errors.Is(err, sql.ErrNoRows):
		// Fall through to the content-hash check below.

	default:
		return "", fmt.Errorf("look up link: %w", err)
	}

	canonical, found, err := s.canonicalForHash(ctx, sig.ContentHash, sig.Link)
	if err != nil {
		return "", err
	}
	if !found {
		return s.insert(ctx, sig, now)
	}

	// Known content under a fresh link. The alias gets its own row, so the
	// scraper recognises the link next cycle; the canonical row keeps the
	// accumulated repost evidence.
	if _, insErr := s.insert(ctx, sig, now); insErr != nil {
		return "", insErr
	}
	if repostErr := s.recordRepost(ctx, canonical, now); repostErr != nil {
		return "", repostErr
	}
	return OutcomeRepost, nil
}

// canonicalForHash finds the oldest row carrying the hash under another
// link. Ties on first_seen_at break by link for determinism.
func (s *Store) canonicalForHash(ctx context.Context, hash, excludeLink string) (signalHead, bool, error) {
	var head signalHead
	err := s.writer.GetContext(ctx, &head,
		`SELECT link, content_hash, first_seen_at, repost_count FROM signals
		 WHERE content_hash = ? AND link != ?
		 ORDER BY first_seen_at, link LIMIT 1`, hash, excludeLink)
	if errors.Is(err, sql.ErrNoRows) {
		return signalHead{}, false, nil
	}
	if err != nil {
		return signalHead{}, false, fmt.Errorf("look up content hash: %w", err)
	}
	return head, true, nil
}

func (s *Store) refresh(ctx context.Context, link string, firstSeen time.Time, reposts int, now time.Time) (UpsertOutcome, error) {
	ghost := tagger.GhostScore(reposts, firstSeen, now)
	_, err := s.writer.ExecContext(ctx,
		`UPDATE signals SET last_seen_at = ?, repost_count = ?, ghost_score = ? WHERE link = ?`,
		now, reposts, ghost, link)
	if err != nil {
		return "", fmt.Errorf("refresh signal: %w", err)
	}
	return OutcomeRefreshed, nil
}

func (s *Store) recordRepost(ctx context.Context, canonical signalHead, now time.Time) error {
	reposts := canonical.RepostCount + 1
	ghost := tagger.GhostScore(reposts, canonical.FirstSeenAt, now)
	_, err := s.writer.ExecContext(ctx,
		`UPDATE signals SET last_seen_at = ?, repost_count = ?, ghost_score = ? WHERE link = ?`,
		now, reposts, ghost, canonical.Link)
	if err != nil {
		return fmt.Errorf("record repost: %w", err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, sig domain.EnrichedSignal, now time.Time) (UpsertOutcome, error) {
	if sig.FirstSeenAt.IsZero() {
		sig.FirstSeenAt = now
	}
	sig.LastSeenAt = now
	if sig.RepostCount < 1 {
		sig.RepostCount = 1
	}

	row, err := toRow(sig)
	if err != nil {
		return "", err
	}

	_, err = s.writer.NamedExecContext(ctx, `
		INSERT INTO signals (
			content_hash, source, link, first_seen_at, last_seen_at, repost_count,
			title, company, description, benefits_text,
			min_salary, max_salary, avg_salary, has_bonus, has_13th_salary, bonus_amount,
			role_type, seniority_level, tech_status,
			benefits, skills, work_model, toxicity_score, ghost_score, ai_washing_flag, legal_flags,
			region, city, contract_type
		) VALUES (
			:content_hash, :source, :link, :first_seen_at, :last_seen_at, :repost_count,
			:title, :company, :description, :benefits_text,
			:min_salary, :max_salary, :avg_salary, :has_bonus, :has_13th_salary, :bonus_amount,
			:role_type, :seniority_level, :tech_status,
			:benefits, :skills, :work_model, :toxicity_score, :ghost_score, :ai_washing_flag, :legal_flags,
			:region, :city, :contract_type
		)`, row)
	if err != nil {
		return "", fmt.Errorf("insert signal: %w", err)
	}
	return OutcomeCreated, nil
}

func (s *Store) updateByLink(ctx context.Context, sig domain.EnrichedSignal) error {
	row, err := toRow(sig)
	if err != nil {
		return err
	}

	_, err = s.writer.NamedExecContext(ctx, `
		UPDATE signals SET
			content_hash = :content_hash, source = :source, last_seen_at = :last_seen_at,
			title = :title, company = :company, description = :description, benefits_text = :benefits_text,
			min_salary = :min_salary, max_salary = :max_salary, avg_salary = :avg_salary,
			has_bonus = :has_bonus, has_13th_salary = :has_13th_salary, bonus_amount = :bonus_amount,
			role_type = :role_type, seniority_level = :seniority_level, tech_status = :tech_status,
			benefits = :benefits, skills = :skills, work_model = :work_model,
			toxicity_score = :toxicity_score, ghost_score = :ghost_score,
			ai_washing_flag = :ai_washing_flag, legal_flags = :legal_flags,
			region = :region, city = :city, contract_type = :contract_type
		WHERE link = :link`, row)
	if err != nil {
		return fmt.Errorf("update signal: %w", err)
	}
	return nil
}

// GetByLink fetches a single stored signal. Mostly a test and debugging aid.
func (s *Store) GetByLink(ctx context.Context, link string) (*domain.EnrichedSignal, error) {
	var row signalRow
	err := s.reader.GetContext(ctx, &row, `SELECT * FROM signals WHERE link = ?`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("signal not found: %s", link)
	}
	if err != nil {
		return nil, fmt.Errorf("get signal: %w", err)
	}
	return row.toSignal()
}

// CleanupExpired deletes signals not observed within the threshold.
// A negative threshold is rejected rather than silently wiping the table.
func (s *Store) CleanupExpired(ctx context.Context, threshold time.Duration) (int64, error) {
	if threshold < 0 {
		return 0, fmt.Errorf("expiry threshold must not be negative: %s", threshold)
	}

	cutoff := time.Now().UTC().Add(-threshold)
	res, err := s.writer.ExecContext(ctx, `DELETE FROM signals WHERE last_seen_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted: %w", err)
	}

	if deleted > 0 {
		s.log.Info("expired signals removed",
			logger.Int64("deleted", deleted),
			logger.Duration("threshold", threshold))
	}
	return deleted, nil
}

// Vacuum reclaims space after cleanup. SQLite requires it outside any
// transaction, which the single-connection writer guarantees.
func (s *Store) Vacuum(ctx context.Context) error {
	if _, err := s.writer.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}

// SignalStats returns record counts and the database file size.
func (s *Store) SignalStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{BySource: make(map[string]int)}

	if err := s.reader.GetContext(ctx, &stats.TotalSignals, `SELECT COUNT(*) FROM signals`); err != nil {
		return nil, fmt.Errorf("count signals: %w", err)
	}

	rows, err := s.reader.QueryxContext(ctx, `SELECT source, COUNT(*) AS n FROM signals GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var source string
		var n int
		if err = rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		stats.BySource[source] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source counts: %w", err)
	}

	if info, statErr := os.Stat(s.path); statErr == nil {
		stats.DBSizeBytes = info.Size()
	}

	return stats, nil
}

// signalRow is the flat SQL representation of an EnrichedSignal. The set
// fields travel as JSON arrays in TEXT columns.
type signalRow struct {
	domain.EnrichedSignal

	BenefitsJSON   string `db:"benefits"`
	SkillsJSON     string `db:"skills"`
	LegalFlagsJSON string `db:"legal_flags"`
}

func toRow(sig domain.EnrichedSignal) (*signalRow, error) {
	benefits, err := json.Marshal(emptyIfNil(sig.Benefits))
	if err != nil {
		return nil, fmt.Errorf("encode benefits: %w", err)
	}
	skills, err := json.Marshal(emptyIfNil(sig.Skills))
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	flags, err := json.Marshal(emptyIfNil(sig.LegalFlags))
	if err != nil {
		return nil, fmt.Errorf("encode legal flags: %w", err)
	}

	return &signalRow{
		EnrichedSignal: sig,
		BenefitsJSON:   string(benefits),
		SkillsJSON:     string(skills),
		LegalFlagsJSON: string(flags),
	}, nil
}

func (r *signalRow) toSignal() (*domain.EnrichedSignal, error) {
	sig := r.EnrichedSignal
	if err := json.Unmarshal([]byte(r.BenefitsJSON), &sig.Benefits); err != nil {
		return nil, fmt.Errorf("decode benefits: %w", err)
	}
	if err := json.Unmarshal([]byte(r.SkillsJSON), &sig.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal([]byte(r.LegalFlagsJSON), &sig.LegalFlags); err != nil {
		return nil, fmt.Errorf("decode legal flags: %w", err)
	}
	return &sig, nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
