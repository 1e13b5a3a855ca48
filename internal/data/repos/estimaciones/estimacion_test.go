package estimaciones

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/testutil"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
)

func seedEstimacion(t *testing.T, dbc dbctx.Context, repo EstimacionRepo, lote *domain.Lote, creada time.Time) *domain.Estimacion {
	t.Helper()
	est := &domain.Estimacion{
		ID:                     uuid.New(),
		LoteID:                 lote.ID,
		CodigoLote:             lote.CodigoLote,
		TipoTerreno:            "Urbano",
		NumViviendas:           2,
		NumUnidadesCatastrales: 2,
		FechaCreacion:          creada,
		FechaModificacion:      creada,
	}
	if _, err := repo.Create(dbc, est); err != nil {
		t.Fatalf("Create estimacion: %v", err)
	}
	return est
}

func TestEstimacionRepoLatestByCodigoLote(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewEstimacionRepo(db, testutil.Logger(t))

	lote := testutil.SeedLote(t, ctx, tx, testutil.RandomCodigoLote())
	old := seedEstimacion(t, dbc, repo, lote, time.Now().Add(-48*time.Hour))
	latest := seedEstimacion(t, dbc, repo, lote, time.Now())

	got, err := repo.GetByCodigoLote(dbc, lote.CodigoLote)
	if err != nil {
		t.Fatalf("GetByCodigoLote: %v", err)
	}
	if got == nil || got.ID != latest.ID {
		t.Fatalf("GetByCodigoLote = %+v, want latest %s (old %s)", got, latest.ID, old.ID)
	}

	history, err := repo.GetByLoteID(dbc, lote.ID)
	if err != nil {
		t.Fatalf("GetByLoteID: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("GetByLoteID = %d rows, want 2", len(history))
	}
}

func TestEstimacionRepoMissingReturnsNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewEstimacionRepo(db, testutil.Logger(t))

	got, err := repo.GetByCodigoLote(dbc, "00000000")
	if err != nil {
		t.Fatalf("GetByCodigoLote: %v", err)
	}
	if got != nil {
		t.Errorf("GetByCodigoLote = %+v, want nil", got)
	}
}

func TestEstimacionRepoDeleteByLoteID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewEstimacionRepo(db, testutil.Logger(t))

	lote := testutil.SeedLote(t, ctx, tx, testutil.RandomCodigoLote())
	seedEstimacion(t, dbc, repo, lote, time.Now())
	seedEstimacion(t, dbc, repo, lote, time.Now())

	if err := repo.DeleteByLoteID(dbc, lote.ID); err != nil {
		t.Fatalf("DeleteByLoteID: %v", err)
	}
	rest, err := repo.GetByLoteID(dbc, lote.ID)
	if err != nil {
		t.Fatalf("GetByLoteID: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("rows after DeleteByLoteID = %d, want 0", len(rest))
	}
}

func TestEstimacionRepoCountByTipoTerreno(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewEstimacionRepo(db, testutil.Logger(t))

	lote := testutil.SeedLote(t, ctx, tx, testutil.RandomCodigoLote())
	before, err := repo.CountByTipoTerreno(dbc, "Urbano")
	if err != nil {
		t.Fatalf("CountByTipoTerreno: %v", err)
	}
	seedEstimacion(t, dbc, repo, lote, time.Now())

	after, err := repo.CountByTipoTerreno(dbc, "Urbano")
	if err != nil {
		t.Fatalf("CountByTipoTerreno: %v", err)
	}
	if after != before+1 {
		t.Errorf("CountByTipoTerreno = %d, want %d", after, before+1)
	}
}
