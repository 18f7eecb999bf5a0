// Package domain defines the core data model of the labour-market
// intelligence pipeline: the raw scraped advert, the canonical enriched
// record, and the closed taxonomic sets derived attributes draw from.
package domain

import "time"

// RawSignal represents a job advert as delivered by a scraper, before any
// normalisation. Free-text fields arrive in Czech or English with
// inconsistent units and formats.
type RawSignal struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	SalaryRaw   string    `json:"salary_raw"`
	Description string    `json:"description"`
	LocationRaw string    `json:"location_raw"`
	BenefitsRaw string    `json:"benefits_raw,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Salary sentinel values. A nil pointer means the salary string was
// unparsable; these sentinels distinguish known-unpaid and negotiable
// postings from parse failures.
const (
	SalaryUnpaid     = 0
	SalaryNegotiable = -1
)

// EnrichedSignal is the canonical enriched record. One row per live advert,
// keyed by content hash for repost detection and by link for refresh
// tracking.
type EnrichedSignal struct {
	// Identity
	ContentHash string `db:"content_hash" json:"content_hash"`

	// Source tracking
	Source      string    `db:"source"       json:"source"`
	Link        string    `db:"link"         json:"link"`
	FirstSeenAt time.Time `db:"first_seen_at" json:"first_seen_at"`
	LastSeenAt  time.Time `db:"last_seen_at"  json:"last_seen_at"`
	RepostCount int       `db:"repost_count"  json:"repost_count"`

	// Descriptive
	Title        string `db:"title"         json:"title"`
	Company      string `db:"company"       json:"company"`
	Description  string `db:"description"   json:"description"`
	BenefitsText string `db:"benefits_text" json:"benefits_text,omitempty"`

	// Salary (monthly CZK; nil = unparsable, 0 = unpaid, -1 = negotiable)
	MinSalary    *int `db:"min_salary"    json:"min_salary,omitempty"`
	MaxSalary    *int `db:"max_salary"    json:"max_salary,omitempty"`
	AvgSalary    *int `db:"avg_salary"    json:"avg_salary,omitempty"`
	HasBonus     bool `db:"has_bonus"     json:"has_bonus"`
	Has13thSalary bool `db:"has_13th_salary" json:"has_13th_salary"`
	BonusAmount  *int `db:"bonus_amount"  json:"bonus_amount,omitempty"`

	// Classification
	RoleType       RoleType       `db:"role_type"       json:"role_type"`
	SeniorityLevel SeniorityLevel `db:"seniority_level" json:"seniority_level"`
	TechStatus     TechStatus     `db:"tech_status"     json:"tech_status"`

	// Tags
	Benefits      []string  `db:"-" json:"benefits"`
	Skills        []string  `db:"-" json:"skills"`
	WorkModel     WorkModel `db:"work_model"      json:"work_model"`
	ToxicityScore int       `db:"toxicity_score"  json:"toxicity_score"`
	GhostScore    int       `db:"ghost_score"     json:"ghost_score"`
	AIWashingFlag bool      `db:"ai_washing_flag" json:"ai_washing_flag"`
	LegalFlags    []string  `db:"-" json:"legal_flags"`

	// Location
	Region Region `db:"region" json:"region"`
	City   string `db:"city"   json:"city"`

	// Contract
	ContractType ContractType `db:"contract_type" json:"contract_type"`
}

// IntPtr returns a pointer to v. Convenience for salary sentinel literals.
func IntPtr(v int) *int {
	return &v
}
