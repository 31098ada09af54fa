package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sloptastic/internal/report"
	"sloptastic/internal/slop"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix matches several runs")
)

// RunSummary is one row of analysis history.
type RunSummary struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	CatalogVersion string         `json:"catalog_version"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
	WordCount      int            `json:"word_count"`
	SentenceCount  int            `json:"sentence_count"`
	TellCount      int            `json:"tell_count"`
	Findings       []slop.Finding `json:"findings"`
}

// PersistRun stores doc and its findings, returning the new run id.
func PersistRun(dbPath string, doc report.Document) (string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	metrics, err := json.Marshal(doc.Metrics)
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO runs(id, source, catalog_version, analyzed_at, word_count, sentence_count, tell_count, metrics) VALUES(?,?,?,?,?,?,?,?)`,
		id,
		doc.Source,
		doc.CatalogVersion,
		doc.AnalyzedAt.UTC().Format(time.RFC3339Nano),
		doc.Metrics.Stats.WordCount,
		doc.Metrics.Stats.SentenceCount,
		doc.Verdict.Tells(),
		string(metrics),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, f := range doc.Verdict.Findings {
		if _, err := tx.Exec(
			`INSERT INTO findings(run_id, position, category, message) VALUES(?,?,?,?)`,
			id, i, string(f.Category), f.Message,
		); err != nil {
			return "", fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs first.
func ListRuns(dbPath string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(
		`SELECT id, source, catalog_version, analyzed_at, word_count, sentence_count, tell_count
		 FROM runs ORDER BY analyzed_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var analyzedAt string
		if err := rows.Scan(&r.ID, &r.Source, &r.CatalogVersion, &analyzedAt, &r.WordCount, &r.SentenceCount, &r.TellCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.AnalyzedAt, err = time.Parse(time.RFC3339Nano, analyzedAt)
		if err != nil {
			return nil, fmt.Errorf("parse analyzed_at %q: %w", analyzedAt, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range out {
		out[i].Findings, err = findingsFor(conn, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadRun rebuilds the stored document of one run. id may be the full run
// id or any unique prefix of it, such as the short form history prints.
func LoadRun(dbPath, id string) (report.Document, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return report.Document{}, err
	}
	defer conn.Close()

	runID, err := resolveRunID(conn, id)
	if err != nil {
		return report.Document{}, err
	}

	var doc report.Document
	var analyzedAt, raw string
	if err := conn.QueryRow(
		`SELECT source, catalog_version, analyzed_at, metrics FROM runs WHERE id = ?`, runID,
	).Scan(&doc.Source, &doc.CatalogVersion, &analyzedAt, &raw); err != nil {
		return report.Document{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	doc.AnalyzedAt, err = time.Parse(time.RFC3339Nano, analyzedAt)
	if err != nil {
		return report.Document{}, fmt.Errorf("parse analyzed_at %q: %w", analyzedAt, err)
	}
	if err := json.Unmarshal([]byte(raw), &doc.Metrics); err != nil {
		return report.Document{}, fmt.Errorf("decode metrics: %w", err)
	}

	findings, err := findingsFor(conn, runID)
	if err != nil {
		return report.Document{}, err
	}
	doc.Verdict = slop.Verdict{Findings: findings, NoTells: len(findings) == 0}
	return doc, nil
}

func resolveRunID(conn *sql.DB, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := conn.Query(`SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return "", fmt.Errorf("query run id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var match string
		if err := rows.Scan(&match); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, match)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate run ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

func findingsFor(conn *sql.DB, runID string) ([]slop.Finding, error) {
	rows, err := conn.Query(`SELECT category, message FROM findings WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	out := []slop.Finding{}
	for rows.Next() {
		var category, message string
		if err := rows.Scan(&category, &message); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		out = append(out, slop.Finding{Category: slop.Category(category), Message: message})
	}
	return out, rows.Err()
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	switch table {
	case "runs", "findings":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
