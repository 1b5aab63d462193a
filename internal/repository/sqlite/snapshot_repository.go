package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// insertBatchSize keeps each INSERT well under sqlite's bound-variable limit.
const insertBatchSize = 200

var wordColumns = []string{
	"position", "word", "definition", "pos", "example",
	"stage", "learned", "attempts", "reviewed", "tested",
}

type wordRow struct {
	Position     int    `db:"position"`
	Word         string `db:"word"`
	Definition   string `db:"definition"`
	PartOfSpeech string `db:"pos"`
	Example      string `db:"example"`
	Stage        int    `db:"stage"`
	Learned      bool   `db:"learned"`
	Attempts     int    `db:"attempts"`
	Reviewed     bool   `db:"reviewed"`
	Tested       bool   `db:"tested"`
}

type metaRow struct {
	LearnCount  int    `db:"learn_count"`
	ReviewCount int    `db:"review_count"`
	TestCount   int    `db:"test_count"`
	Source      string `db:"source"`
}

type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository keeps the snapshot in the words and store_meta tables.
func NewSnapshotRepository(db *sqlx.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("loading snapshot")

	metaSQL, metaArgs, err := sqlBuilder.
		Select("learn_count", "review_count", "test_count", "source").
		From("store_meta").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var meta metaRow
	err = r.db.GetContext(ctx, &meta, metaSQL, metaArgs...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no snapshot saved yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load store meta: %v", err)
		return nil, err
	}

	wordsSQL, wordsArgs, err := sqlBuilder.Select(wordColumns...).From("words").OrderBy("position ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	var rows []wordRow
	if err := r.db.SelectContext(ctx, &rows, wordsSQL, wordsArgs...); err != nil {
		log.Error("failed to load words: %v", err)
		return nil, err
	}

	snap := models.Snapshot{
		Words:    make([]models.WordRecord, 0, len(rows)),
		Settings: settingsFromMeta(meta),
		Source:   meta.Source,
	}
	for _, row := range rows {
		w := models.WordRecord{
			Word:         row.Word,
			Definition:   row.Definition,
			PartOfSpeech: row.PartOfSpeech,
			Example:      row.Example,
			Stage:        row.Stage,
			Learned:      row.Learned,
			Attempts:     row.Attempts,
			Reviewed:     row.Reviewed,
			Tested:       row.Tested,
		}
		w.Normalize()
		snap.Words = append(snap.Words, w)
	}
	log.Debug("snapshot loaded: words=%d", len(snap.Words))
	return &snap, nil
}

func (r *snapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("saving snapshot: words=%d", len(snap.Words))

	return db.Tx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
			log.Error("failed to clear words: %v", err)
			return err
		}

		for start := 0; start < len(snap.Words); start += insertBatchSize {
			end := min(start+insertBatchSize, len(snap.Words))
			query := sqlBuilder.Insert("words").Columns(wordColumns...)
			for i, w := range snap.Words[start:end] {
				query = query.Values(start+i, w.Word, w.Definition, w.PartOfSpeech, w.Example,
					models.ClampStage(w.Stage), w.Learned, max(w.Attempts, 0), w.Reviewed, w.Tested)
			}
			insertSQL, args, err := query.ToSql()
			if err != nil {
				log.Error("failed to build insert: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
				log.Error("failed to insert words batch at %d: %v", start, err)
				return err
			}
		}

		metaSQL, args, err := sqlBuilder.Insert("store_meta").
			Columns("id", "learn_count", "review_count", "test_count", "source").
			Values(1, snap.Settings.LearnCount, snap.Settings.ReviewCount, snap.Settings.TestCount, snap.Source).
			Suffix(`ON CONFLICT(id) DO UPDATE SET
learn_count = excluded.learn_count,
review_count = excluded.review_count,
test_count = excluded.test_count,
source = excluded.source,
saved_at = CURRENT_TIMESTAMP`).
			ToSql()
		if err != nil {
			log.Error("failed to build meta upsert: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, metaSQL, args...); err != nil {
			log.Error("failed to save store meta: %v", err)
			return err
		}
		return nil
	})
}

func (r *snapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func settingsFromMeta(meta metaRow) models.Settings {
	s := models.DefaultSettings()
	if meta.LearnCount > 0 {
		s.LearnCount = meta.LearnCount
	}
	if meta.ReviewCount > 0 {
		s.ReviewCount = meta.ReviewCount
	}
	if meta.TestCount > 0 {
		s.TestCount = meta.TestCount
	}
	return s
}
