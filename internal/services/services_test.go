package services_test

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository/jsonfile"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/store"
	"github.com/vytor/wordflash/internal/testutil"
	"github.com/vytor/wordflash/internal/testutil/mocks"
)

const deckCSV = "word,pos,definition\napple,n.,a fruit\nzebra,n.,a striped animal\nrun,v.,to move fast\n"

type env struct {
	deck  services.DeckService
	drill services.DrillService
	dir   string
}

func newEnv(t *testing.T) env {
	dir := t.TempDir()
	st := store.New(jsonfile.NewSnapshotRepository(filepath.Join(dir, "progress.json")), store.Options{
		LastDeckPath: filepath.Join(dir, "last_words"),
	})
	lib := services.NewLibrary(st)
	return env{
		deck:  services.NewDeckService(lib, jsonfile.NewBackupRepository(filepath.Join(dir, "backups"), 2)),
		drill: services.NewDrillService(lib, rand.New(rand.NewPCG(1, 2))),
		dir:   dir,
	}
}

func (e env) importDeck(t *testing.T) {
	_, err := e.deck.Import(context.Background(), []byte(deckCSV), importer.FormatCSV, "gre.csv")
	require.NoError(t, err)
}

func TestDeckService_ImportAndStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	stats, err := e.deck.Import(ctx, []byte(deckCSV), importer.FormatCSV, "gre.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, "gre.csv", stats.Source)

	again, err := e.deck.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestDeckService_Words(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)

	all, err := e.deck.Words(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "apple", all[0].Word)

	firstTwo, err := e.deck.Words(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, firstTwo, 2)

	firstTwo[0].Stage = 3
	again, err := e.deck.Words(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Stage, "callers get copies")
}

func TestDeckService_ImportRejectsEmptyPayload(t *testing.T) {
	_, err := newEnv(t).deck.Import(context.Background(), nil, importer.FormatCSV, "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
}

func TestDeckService_ImportFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	path := testutil.WriteFile(t, "decks/animals.csv", []byte(deckCSV))

	require.NoError(t, e.deck.ImportFile(ctx, path, "", ""))

	stats, err := e.deck.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "animals.csv", stats.Source)

	err = e.deck.ImportFile(ctx, filepath.Join(e.dir, "missing.csv"), "", "")
	assert.True(t, errors.IsIO(err))

	err = e.deck.ImportFile(ctx, filepath.Join(e.dir, "deck.pdf"), "", "")
	assert.True(t, errors.IsValidation(err))
}

func TestDeckService_Settings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	got, err := e.deck.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)

	_, err = e.deck.UpdateSettings(ctx, models.Settings{LearnCount: 0, ReviewCount: 1, TestCount: 1})
	assert.True(t, errors.IsValidation(err))

	want := models.Settings{LearnCount: 2, ReviewCount: 3, TestCount: 4}
	got, err = e.deck.UpdateSettings(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDeckService_ReloadRestoresSavedProgress(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)

	src, stats, err := e.deck.Reload(ctx)

	require.NoError(t, err)
	assert.Equal(t, store.LoadedProgress, src)
	assert.Equal(t, 3, stats.Total)
}

func TestDeckService_BackupRotates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)

	for i := 0; i < 3; i++ {
		path, err := e.deck.Backup(ctx)
		require.NoError(t, err)
		assert.FileExists(t, path)
	}
	matches, err := filepath.Glob(filepath.Join(e.dir, "backups", "progress-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestDeckService_BackupFailure(t *testing.T) {
	backups := new(mocks.MockBackupRepository)
	backups.On("Write", mock.Anything, mock.Anything).Return("", stderrors.New("no space"))
	lib := services.NewLibrary(store.New(new(mocks.MockSnapshotRepository), store.Options{}))

	_, err := services.NewDeckService(lib, backups).Backup(context.Background())

	assert.True(t, errors.IsIO(err))
	backups.AssertExpectations(t)
}

func TestDeckService_BackupDisabled(t *testing.T) {
	lib := services.NewLibrary(store.New(new(mocks.MockSnapshotRepository), store.Options{}))

	_, err := services.NewDeckService(lib, nil).Backup(context.Background())

	assert.True(t, errors.IsConflict(err))
}

func TestDeckService_Ready(t *testing.T) {
	repo := new(mocks.MockSnapshotRepository)
	repo.On("Ping", mock.Anything).Return(stderrors.New("gone")).Once()
	repo.On("Ping", mock.Anything).Return(nil).Once()
	deck := services.NewDeckService(services.NewLibrary(store.New(repo, store.Options{})), nil)

	assert.True(t, errors.IsIO(deck.Ready(context.Background())))
	assert.NoError(t, deck.Ready(context.Background()))
}

func TestDrillService_SessionLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)

	_, err := e.drill.Prompt(ctx, models.ModeLearn)
	assert.True(t, errors.IsNotFound(err))

	p, err := e.drill.Start(ctx, models.ModeLearn)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseChoice, p.Phase)
	assert.Equal(t, 3, p.Remaining)

	same, err := e.drill.Prompt(ctx, models.ModeLearn)
	require.NoError(t, err)
	assert.Equal(t, p, same)

	_, err = e.drill.Submit(ctx, models.ModeLearn, "definitely wrong")
	require.NoError(t, err)

	stats, err := e.drill.Stats(ctx, models.ModeLearn)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Answered)
	assert.Equal(t, p.SessionID, stats.SessionID)

	require.NoError(t, e.drill.Abandon(ctx, models.ModeLearn))
	_, err = e.drill.Stats(ctx, models.ModeLearn)
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(e.drill.Abandon(ctx, models.ModeLearn)))
}

func TestDrillService_ModesAreIndependent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)

	learn, err := e.drill.Start(ctx, models.ModeLearn)
	require.NoError(t, err)
	review, err := e.drill.Start(ctx, models.ModeReview)
	require.NoError(t, err)

	assert.NotEqual(t, learn.SessionID, review.SessionID)
	assert.Equal(t, models.PhaseRecognition, review.Phase)

	p, err := e.drill.Reveal(ctx, models.ModeReview)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseSpelling, p.Phase)

	_, err = e.drill.Confirm(ctx, models.ModeReview, true)
	assert.True(t, errors.IsValidation(err))

	fb, err := e.drill.Skip(ctx, models.ModeReview)
	require.NoError(t, err)
	assert.True(t, fb.Requeued)
}

func TestDrillService_ImportInvalidatesSessions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)
	_, err := e.drill.Start(ctx, models.ModeTest)
	require.NoError(t, err)

	e.importDeck(t)

	_, err = e.drill.Submit(ctx, models.ModeTest, "apple")
	assert.True(t, errors.IsConflict(err))
	_, err = e.drill.Prompt(ctx, models.ModeTest)
	assert.True(t, errors.IsNotFound(err), "stale session is dropped")

	_, err = e.drill.Start(ctx, models.ModeTest)
	assert.NoError(t, err)
}

func TestDrillService_UnknownMode(t *testing.T) {
	e := newEnv(t)

	_, err := e.drill.Start(context.Background(), models.Mode("quiz"))
	assert.True(t, errors.IsValidation(err))
	_, err = e.drill.Prompt(context.Background(), models.Mode("quiz"))
	assert.True(t, errors.IsValidation(err))
}

func TestDrillService_ConcurrentAnswersAreSerialised(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.importDeck(t)
	_, err := e.drill.Start(ctx, models.ModeTest)
	require.NoError(t, err)
	_, err = e.drill.Start(ctx, models.ModeReview)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = e.drill.Skip(ctx, models.ModeTest)
		}()
		go func() {
			defer wg.Done()
			_, _ = e.drill.Stats(ctx, models.ModeReview)
			_, _ = e.deck.Stats(ctx)
		}()
	}
	wg.Wait()

	stats, err := e.drill.Stats(ctx, models.ModeTest)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Answered, "one answer per queued word")
	assert.Zero(t, stats.Remaining)
}
