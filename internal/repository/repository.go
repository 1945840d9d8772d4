package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/models"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrAlreadyProcessed = errors.New("summary and keywords already set")
)

// PersistenceError reports a failed store operation on the record keyed by
// Key.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Repository stores one MetadataRecord per file name. Implementations accept
// concurrent calls for distinct keys.
type Repository interface {
	Create(ctx context.Context, rec *models.MetadataRecord) error
	UpdateResults(ctx context.Context, fileName, summary string, keywords []string) error
	GetByFileName(ctx context.Context, fileName string) (*models.MetadataRecord, error)
	List(ctx context.Context) ([]models.MetadataRecord, error)
	Delete(ctx context.Context, fileName string) error
}

type sqlRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &sqlRepository{db: db}
}

type recordRow struct {
	ID          string         `db:"id"`
	FileName    string         `db:"file_name"`
	FilePath    string         `db:"file_path"`
	FileSize    int64          `db:"file_size"`
	PageCount   int            `db:"page_count"`
	Category    string         `db:"category"`
	Summary     sql.NullString `db:"summary"`
	Keywords    sql.NullString `db:"keywords"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	ProcessedAt sql.NullTime   `db:"processed_at"`
}

func (r recordRow) toModel() (*models.MetadataRecord, error) {
	rec := &models.MetadataRecord{
		ID:        r.ID,
		FileName:  r.FileName,
		FilePath:  r.FilePath,
		FileSize:  r.FileSize,
		PageCount: r.PageCount,
		Category:  models.Category(r.Category),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Summary.Valid {
		summary := r.Summary.String
		rec.Summary = &summary
	}
	if r.Keywords.Valid {
		if err := json.Unmarshal([]byte(r.Keywords.String), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
		if rec.Keywords == nil {
			rec.Keywords = []string{}
		}
	}
	if r.ProcessedAt.Valid {
		processed := r.ProcessedAt.Time
		rec.ProcessedAt = &processed
	}
	return rec, nil
}

const selectColumns = `id, file_name, file_path, file_size, page_count, category,
	summary, keywords, created_at, updated_at, processed_at`

func (r *sqlRepository) Create(ctx context.Context, rec *models.MetadataRecord) error {
	query := `
		INSERT INTO pdf_documents (id, file_name, file_path, file_size, page_count, category, created_at, updated_at)
		VALUES (:id, :file_name, :file_path, :file_size, :page_count, :category, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, recordRow{
		ID:        rec.ID,
		FileName:  rec.FileName,
		FilePath:  rec.FilePath,
		FileSize:  rec.FileSize,
		PageCount: rec.PageCount,
		Category:  string(rec.Category),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			err = fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return &PersistenceError{Op: "create", Key: rec.FileName, Err: err}
	}

	return nil
}

// UpdateResults sets summary and keywords together. It only matches rows
// whose summary is still null, so results are written at most once.
func (r *sqlRepository) UpdateResults(ctx context.Context, fileName, summary string, keywords []string) error {
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: err}
	}

	query := `
		UPDATE pdf_documents
		SET summary = ?, keywords = ?, processed_at = ?, updated_at = ?
		WHERE file_name = ? AND summary IS NULL
	`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, summary, string(keywordsJSON), now, now, fileName)
	if err != nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: err}
	}
	if affected == 1 {
		return nil
	}

	existing, err := r.GetByFileName(ctx, fileName)
	if err != nil {
		return err
	}
	if existing == nil {
		return &PersistenceError{Op: "update", Key: fileName, Err: ErrNotFound}
	}
	return &PersistenceError{Op: "update", Key: fileName, Err: ErrAlreadyProcessed}
}

func (r *sqlRepository) GetByFileName(ctx context.Context, fileName string) (*models.MetadataRecord, error) {
	var row recordRow

	query := `SELECT ` + selectColumns + ` FROM pdf_documents WHERE file_name = ?`

	err := r.db.GetContext(ctx, &row, query, fileName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Key: fileName, Err: err}
	}

	rec, err := row.toModel()
	if err != nil {
		return nil, &PersistenceError{Op: "get", Key: fileName, Err: err}
	}
	return rec, nil
}

func (r *sqlRepository) List(ctx context.Context) ([]models.MetadataRecord, error) {
	var rows []recordRow

	query := `SELECT ` + selectColumns + ` FROM pdf_documents ORDER BY file_name`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	records := make([]models.MetadataRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toModel()
		if err != nil {
			return nil, &PersistenceError{Op: "list", Key: row.FileName, Err: err}
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (r *sqlRepository) Delete(ctx context.Context, fileName string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pdf_documents WHERE file_name = ?`, fileName)
	if err != nil {
		return &PersistenceError{Op: "delete", Key: fileName, Err: err}
	}
	return nil
}
