// Package analytics exposes the read-only aggregation queries consumed by
// the reporting layer. Every query runs against the signals table over the
// store's read-only connection and returns a small tabular result with a
// stable column set.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/trhprace/intelligence/internal/logger"
)

// GhostScoreThreshold selects which postings the ghost_jobs query reports.
// Adverts whose content hash appears under more than one link are reported
// regardless of score.
const GhostScoreThreshold = 50

// Result is one executed query: column order as the SQL declared it, one
// map per row.
type Result struct {
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Service runs the named analytical queries.
type Service struct {
	db  *sqlx.DB
	log logger.Logger
}

// NewService wraps the read-only store connection.
func NewService(db *sqlx.DB, log logger.Logger) *Service {
	return &Service{db: db, log: log}
}

// queries maps query name to its SQL. Only salaried rows (avg_salary > 0)
// feed the salary aggregates, so sentinel values never skew an average.
var queries = map[string]string{
	"salary_by_role": `
		SELECT role_type,
		       COUNT(*) AS sample_size,
		       CAST(AVG(avg_salary) AS INTEGER) AS avg_salary,
		       MIN(min_salary) AS min_salary,
		       MAX(max_salary) AS max_salary
		FROM signals
		WHERE avg_salary > 0
		GROUP BY role_type
		ORDER BY avg_salary DESC`,

	"salary_by_seniority": `
		SELECT seniority_level,
		       COUNT(*) AS sample_size,
		       CAST(AVG(avg_salary) AS INTEGER) AS avg_salary,
		       MIN(min_salary) AS min_salary,
		       MAX(max_salary) AS max_salary
		FROM signals
		WHERE avg_salary > 0
		GROUP BY seniority_level
		ORDER BY avg_salary DESC`,

	"salary_by_city": `
		SELECT city,
		       COUNT(*) AS sample_size,
		       CAST(AVG(avg_salary) AS INTEGER) AS avg_salary
		FROM signals
		WHERE avg_salary > 0 AND city != ''
		GROUP BY city
		ORDER BY avg_salary DESC`,

	"salary_by_contract_type": `
		SELECT contract_type,
		       COUNT(*) AS sample_size,
		       CAST(AVG(avg_salary) AS INTEGER) AS avg_salary,
		       MIN(min_salary) AS min_salary,
		       MAX(max_salary) AS max_salary
		FROM signals
		WHERE avg_salary > 0
		GROUP BY contract_type
		ORDER BY avg_salary DESC`,

	"seniority_role_matrix": `
		SELECT role_type,
		       seniority_level,
		       COUNT(*) AS postings
		FROM signals
		GROUP BY role_type, seniority_level
		ORDER BY role_type, seniority_level`,

	"salary_percentiles_by_role": `
		WITH ranked AS (
			SELECT role_type,
			       avg_salary,
			       ROW_NUMBER() OVER (PARTITION BY role_type ORDER BY avg_salary) AS rn,
			       COUNT(*) OVER (PARTITION BY role_type) AS cnt
			FROM signals
			WHERE avg_salary > 0
		)
		SELECT role_type,
		       MAX(cnt) AS sample_size,
		       MIN(CASE WHEN rn >= cnt * 0.25 THEN avg_salary END) AS p25,
		       MIN(CASE WHEN rn >= cnt * 0.50 THEN avg_salary END) AS p50,
		       MIN(CASE WHEN rn >= cnt * 0.75 THEN avg_salary END) AS p75
		FROM ranked
		GROUP BY role_type
		ORDER BY p50 DESC`,

	"remote_salary_premium": `
		WITH by_model AS (
			SELECT work_model,
			       COUNT(*) AS sample_size,
			       AVG(avg_salary) AS avg_czk
			FROM signals
			WHERE avg_salary > 0
			GROUP BY work_model
		)
		SELECT work_model,
		       sample_size,
		       CAST(avg_czk AS INTEGER) AS avg_salary,
		       CAST((avg_czk / NULLIF((SELECT avg_czk FROM by_model WHERE work_model = 'Office'), 0) - 1) * 100 AS INTEGER) AS premium_vs_office_pct
		FROM by_model
		ORDER BY avg_salary DESC`,

	"skill_premiums": `
		SELECT je.value AS skill,
		       COUNT(*) AS sample_size,
		       CAST(AVG(s.avg_salary) AS INTEGER) AS avg_salary,
		       CAST((AVG(s.avg_salary) / NULLIF((SELECT AVG(avg_salary) FROM signals WHERE avg_salary > 0), 0) - 1) * 100 AS INTEGER) AS premium_pct
		FROM signals s, json_each(s.skills) je
		WHERE s.avg_salary > 0
		GROUP BY je.value
		ORDER BY avg_salary DESC`,

	"benefits_analysis": `
		SELECT je.value AS benefit,
		       COUNT(*) AS postings,
		       CAST(COUNT(*) * 100.0 / NULLIF((SELECT COUNT(*) FROM signals), 0) AS INTEGER) AS share_pct
		FROM signals s, json_each(s.benefits) je
		GROUP BY je.value
		ORDER BY postings DESC`,

	"benefits_by_role": `
		SELECT s.role_type,
		       je.value AS benefit,
		       COUNT(*) AS postings
		FROM signals s, json_each(s.benefits) je
		GROUP BY s.role_type, je.value
		ORDER BY s.role_type, postings DESC`,

	"trending_benefits": `
		SELECT je.value AS benefit,
		       SUM(CASE WHEN s.first_seen_at >= datetime('now', '-7 days') THEN 1 ELSE 0 END) AS last_7_days,
		       SUM(CASE WHEN s.first_seen_at < datetime('now', '-7 days')
		                 AND s.first_seen_at >= datetime('now', '-14 days') THEN 1 ELSE 0 END) AS previous_7_days
		FROM signals s, json_each(s.benefits) je
		GROUP BY je.value
		ORDER BY last_7_days DESC`,

	"work_model_distribution": `
		SELECT work_model,
		       COUNT(*) AS postings,
		       CAST(COUNT(*) * 100.0 / NULLIF((SELECT COUNT(*) FROM signals), 0) AS INTEGER) AS share_pct
		FROM signals
		GROUP BY work_model
		ORDER BY postings DESC`,

	"work_model_by_role": `
		SELECT role_type,
		       work_model,
		       COUNT(*) AS postings
		FROM signals
		GROUP BY role_type, work_model
		ORDER BY role_type, postings DESC`,

	"emerging_tech_signals": `
		SELECT role_type,
		       COUNT(*) AS postings,
		       SUM(CASE WHEN tech_status = 'Modern' THEN 1 ELSE 0 END) AS modern,
		       SUM(CASE WHEN tech_status = 'Dinosaur' THEN 1 ELSE 0 END) AS dinosaur,
		       CAST(SUM(CASE WHEN tech_status = 'Modern' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS INTEGER) AS modern_pct
		FROM signals
		GROUP BY role_type
		ORDER BY modern_pct DESC`,

	"new_market_entrants": `
		SELECT company,
		       MIN(first_seen_at) AS first_posting_at,
		       COUNT(*) AS postings
		FROM signals
		GROUP BY company
		HAVING MIN(first_seen_at) >= datetime('now', '-14 days')
		ORDER BY first_posting_at DESC`,

	"ghost_jobs": `
		SELECT content_hash,
		       link,
		       title,
		       company,
		       repost_count,
		       ghost_score,
		       CAST(julianday('now') - julianday(first_seen_at) AS INTEGER) AS days_open
		FROM signals
		WHERE ghost_score >= ` + fmt.Sprint(GhostScoreThreshold) + `
		   OR content_hash IN (
		       SELECT content_hash FROM signals GROUP BY content_hash HAVING COUNT(*) >= 2)
		ORDER BY ghost_score DESC, repost_count DESC`,

	"ai_washing_nontech": `
		SELECT company,
		       title,
		       role_type,
		       link
		FROM signals
		WHERE ai_washing_flag = 1
		ORDER BY company, title`,

	"toxicity_flags": `
		SELECT company,
		       title,
		       toxicity_score,
		       link
		FROM signals
		WHERE toxicity_score > 0
		ORDER BY toxicity_score DESC`,

	"regional_stats": `
		SELECT region,
		       COUNT(*) AS postings,
		       CAST(AVG(CASE WHEN avg_salary > 0 THEN avg_salary END) AS INTEGER) AS avg_salary,
		       CAST(SUM(CASE WHEN work_model = 'Remote' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS INTEGER) AS remote_pct
		FROM signals
		GROUP BY region
		ORDER BY postings DESC`,

	"regional_trends": `
		SELECT region,
		       strftime('%Y-%W', first_seen_at) AS week,
		       COUNT(*) AS postings
		FROM signals
		GROUP BY region, week
		ORDER BY week DESC, region`,

	"data_freshness": `
		SELECT source,
		       COUNT(*) AS postings,
		       MIN(first_seen_at) AS oldest_first_seen,
		       MAX(last_seen_at) AS newest_last_seen,
		       CAST(julianday(MAX(last_seen_at)) - julianday(MIN(first_seen_at)) AS INTEGER) AS days_covered,
		       CASE WHEN julianday(MAX(last_seen_at)) - julianday(MIN(first_seen_at)) >= 14 THEN 1 ELSE 0 END AS trend_ready
		FROM signals
		GROUP BY source
		ORDER BY source`,
}

// QueryNames lists every available query, sorted.
func QueryNames() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a named query. Unknown names get an error naming the valid
// set, so a typo in an API call is self-explanatory.
func (s *Service) Run(ctx context.Context, name string) (*Result, error) {
	query, ok := queries[name]
	if !ok {
		return nil, fmt.Errorf("unknown query %q, valid queries: %v", name, QueryNames())
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run query %s: %w", name, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", name, err)
	}

	result := &Result{Name: name, Columns: cols, Rows: []map[string]any{}}
	for rows.Next() {
		row := make(map[string]any, len(cols))
		if err = rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", name, err)
		}
		for k, v := range row {
			// The driver hands TEXT columns back as byte slices.
			if b, isBytes := v.([]byte); isBytes {
				row[k] = string(b)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", name, err)
	}

	s.log.Debug("query executed",
		logger.String("query", name),
		logger.Int("rows", len(result.Rows)))

	return result, nil
}
