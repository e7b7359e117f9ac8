// Package ingest loads and joins the three tabular movie sources (metadata,
// cast/crew, keywords) on their shared numeric id column, producing the
// joined table the graph builder and vector index are fed from.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

// Sources names the three delimited files keyed by the shared id column.
type Sources struct {
	MoviesPath   string
	CreditsPath  string
	KeywordsPath string
}

// MovieRow is one surviving row of the joined table. Nested structures
// (genres, cast, crew, keywords) stay serialized; the builder decodes them.
// Commerce fields pass through verbatim for the semantic-search records.
type MovieRow struct {
	ID               int
	Title            string
	Popularity       *float64
	VoteAverage      *float64
	Overview         string
	ReleaseDate      string
	OriginalTitle    string
	OriginalLanguage string
	Budget           string
	Revenue          string
	Genres           string
	Cast             string
	Crew             string
	Keywords         string
}

var movieColumns = []string{
	"id", "title", "popularity", "vote_average", "overview", "release_date",
	"original_title", "original_language", "budget", "revenue", "genres",
}

// Load reads the three sources and performs the inner join: ids coerced to
// numeric (non-numeric dropped), rows without a match in all three sources
// excluded, duplicate ids collapsed to first occurrence, and rows lacking a
// release date dropped.
func Load(src Sources) ([]MovieRow, error) {
	log := logger.Get()

	movies, err := readTable(src.MoviesPath, movieColumns)
	if err != nil {
		return nil, err
	}
	credits, err := readTable(src.CreditsPath, []string{"id", "cast", "crew"})
	if err != nil {
		return nil, err
	}
	keywords, err := readTable(src.KeywordsPath, []string{"id", "keywords"})
	if err != nil {
		return nil, err
	}

	// First occurrence wins on the right-hand sides of the join.
	creditByID := make(map[int]record, len(credits.rows))
	for _, rec := range credits.rows {
		if _, ok := creditByID[rec.id]; !ok {
			creditByID[rec.id] = rec
		}
	}
	keywordByID := make(map[int]record, len(keywords.rows))
	for _, rec := range keywords.rows {
		if _, ok := keywordByID[rec.id]; !ok {
			keywordByID[rec.id] = rec
		}
	}

	seen := make(map[int]bool, len(movies.rows))
	joined := make([]MovieRow, 0, len(movies.rows))
	for _, rec := range movies.rows {
		if seen[rec.id] {
			continue
		}
		credit, ok := creditByID[rec.id]
		if !ok {
			continue
		}
		keyword, ok := keywordByID[rec.id]
		if !ok {
			continue
		}
		release := strings.TrimSpace(movies.field(rec, "release_date"))
		if release == "" {
			continue
		}
		seen[rec.id] = true

		joined = append(joined, MovieRow{
			ID:               rec.id,
			Title:            movies.field(rec, "title"),
			Popularity:       parseFloat(movies.field(rec, "popularity")),
			VoteAverage:      parseFloat(movies.field(rec, "vote_average")),
			Overview:         movies.field(rec, "overview"),
			ReleaseDate:      release,
			OriginalTitle:    movies.field(rec, "original_title"),
			OriginalLanguage: movies.field(rec, "original_language"),
			Budget:           movies.field(rec, "budget"),
			Revenue:          movies.field(rec, "revenue"),
			Genres:           movies.field(rec, "genres"),
			Cast:             credits.field(credit, "cast"),
			Crew:             credits.field(credit, "crew"),
			Keywords:         keywords.field(keyword, "keywords"),
		})
	}

	log.Info("Joined tabular sources",
		zap.Int("movies", len(movies.rows)),
		zap.Int("credits", len(credits.rows)),
		zap.Int("keywords", len(keywords.rows)),
		zap.Int("joined", len(joined)),
	)
	return joined, nil
}

// table is one parsed CSV source with rows already id-coerced.
type table struct {
	columns map[string]int
	rows    []record
}

type record struct {
	id     int
	fields []string
}

func (t *table) field(rec record, column string) string {
	idx := t.columns[column]
	if idx >= len(rec.fields) {
		return ""
	}
	return rec.fields[idx]
}

func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewBaseError(apperrors.ErrorTypeIngest,
			fmt.Sprintf("cannot open source %s", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, apperrors.NewBaseError(apperrors.ErrorTypeIngest,
			fmt.Sprintf("cannot read header of %s", path), err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, apperrors.NewMissingColumn(path, col)
		}
	}

	idIdx := columns["id"]
	t := &table{columns: columns}
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewBaseError(apperrors.ErrorTypeIngest,
				fmt.Sprintf("cannot read row of %s", path), err)
		}
		if idIdx >= len(fields) {
			continue
		}
		// Rows with a non-numeric id can never join and are dropped here.
		id, err := strconv.Atoi(strings.TrimSpace(fields[idIdx]))
		if err != nil {
			continue
		}
		t.rows = append(t.rows, record{id: id, fields: fields})
	}
	return t, nil
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
