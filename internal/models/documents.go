package models

import (
	"time"
)

type Category string

const (
	CategoryShort  Category = "short"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
)

// Document is the extracted form of one source file. It is built once per
// processing pass and not persisted as a whole.
type Document struct {
	FileName  string
	FilePath  string
	FileSize  int64
	PageCount int
	Category  Category
	Text      string
}

// MetadataRecord is the persisted row for a document. Summary and Keywords
// stay nil until the pipeline has computed both.
type MetadataRecord struct {
	ID          string     `json:"id" bson:"_id"`
	FileName    string     `json:"file_name" bson:"file_name"`
	FilePath    string     `json:"file_path" bson:"file_path"`
	FileSize    int64      `json:"file_size" bson:"file_size"`
	PageCount   int        `json:"page_count" bson:"page_count"`
	Category    Category   `json:"category" bson:"category"`
	Summary     *string    `json:"summary" bson:"summary"`
	Keywords    []string   `json:"keywords" bson:"keywords"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" bson:"processed_at"`
}

type AnalysisResult struct {
	Category Category `json:"category"`
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

type Outcome struct {
	FileName string        `json:"file_name"`
	Category Category      `json:"category,omitempty"`
	Phase    string        `json:"phase,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

type BatchReport struct {
	RunID     string        `json:"run_id"`
	Folder    string        `json:"folder,omitempty"`
	Outcomes  []Outcome     `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
}

type BatchRequest struct {
	Folder string `json:"folder"`
	// Replace drops stored records for the folder's files before processing.
	Replace bool `json:"replace"`
}

type SummaryRequest struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}
