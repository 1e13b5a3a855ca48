package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/testutil"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
)

func testDBC() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

func TestEstimacionCreateRecomputesTotal(t *testing.T) {
	log := testutil.Logger(t)
	lote := &domain.Lote{ID: uuid.New(), CodigoLote: "00012345"}
	loteRepo := &fakeLoteRepo{byCodigo: map[string]*domain.Lote{"00012345": lote}}
	estRepo := &fakeEstimacionRepo{}
	svc := NewEstimacionService(log, estRepo, loteRepo)

	in := &domain.Estimacion{
		CodigoLote:             "00012345",
		NumUnidadesCatastrales: 999, // client-supplied, must be discarded
		NumViviendas:           2,
		NumComercios:           1,
		NumEstacionamientos:    3,
	}
	out, err := svc.Create(testDBC(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.NumUnidadesCatastrales != 6 {
		t.Errorf("NumUnidadesCatastrales = %d, want 6", out.NumUnidadesCatastrales)
	}
	if out.LoteID != lote.ID {
		t.Errorf("LoteID = %s, want %s", out.LoteID, lote.ID)
	}
	if len(estRepo.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(estRepo.created))
	}
}

func TestEstimacionCreateUnknownLot(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewEstimacionService(log, &fakeEstimacionRepo{}, &fakeLoteRepo{byCodigo: map[string]*domain.Lote{}})

	_, err := svc.Create(testDBC(), &domain.Estimacion{CodigoLote: "99999999"})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeLoteNotFound {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeLoteNotFound)
	}
}

func TestEstimacionCreateRejectsNegativeCounts(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewEstimacionService(log, &fakeEstimacionRepo{}, &fakeLoteRepo{})

	_, err := svc.Create(testDBC(), &domain.Estimacion{CodigoLote: "00012345", NumViviendas: -1})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeValidationFailed {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeValidationFailed)
	}
}

func TestEstimacionUpdateKeepsIdentityAndRecomputes(t *testing.T) {
	log := testutil.Logger(t)
	existing := &domain.Estimacion{
		ID:         uuid.New(),
		LoteID:     uuid.New(),
		CodigoLote: "00012345",
	}
	estRepo := &fakeEstimacionRepo{byID: map[uuid.UUID]*domain.Estimacion{existing.ID: existing}}
	svc := NewEstimacionService(log, estRepo, &fakeLoteRepo{})

	in := &domain.Estimacion{
		CodigoLote:             "00012345",
		LoteID:                 uuid.New(), // must be ignored
		NumUnidadesCatastrales: 50,
		NumViviendas:           4,
		NumSalud:               1,
	}
	out, err := svc.Update(testDBC(), existing.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.ID != existing.ID || out.LoteID != existing.LoteID {
		t.Errorf("identity fields changed: id=%s lote=%s", out.ID, out.LoteID)
	}
	if out.NumUnidadesCatastrales != 5 {
		t.Errorf("NumUnidadesCatastrales = %d, want 5", out.NumUnidadesCatastrales)
	}
}

func TestEstimacionDeleteByLote(t *testing.T) {
	log := testutil.Logger(t)
	lote := &domain.Lote{ID: uuid.New(), CodigoLote: "00012345"}
	loteRepo := &fakeLoteRepo{byCodigo: map[string]*domain.Lote{"00012345": lote}}
	estRepo := &fakeEstimacionRepo{}
	svc := NewEstimacionService(log, estRepo, loteRepo)

	if err := svc.DeleteByLote(testDBC(), "00012345"); err != nil {
		t.Fatalf("DeleteByLote: %v", err)
	}
	if len(estRepo.deletedLoteIDs) != 1 || estRepo.deletedLoteIDs[0] != lote.ID {
		t.Errorf("deletedLoteIDs = %v, want [%s]", estRepo.deletedLoteIDs, lote.ID)
	}
}

func TestEstimacionDeleteByLoteUnknownLot(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewEstimacionService(log, &fakeEstimacionRepo{}, &fakeLoteRepo{byCodigo: map[string]*domain.Lote{}})

	err := svc.DeleteByLote(testDBC(), "99999999")
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeLoteNotFound {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeLoteNotFound)
	}
}

func TestEstimacionUpdateNotFound(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewEstimacionService(log, &fakeEstimacionRepo{byID: map[uuid.UUID]*domain.Estimacion{}}, &fakeLoteRepo{})

	_, err := svc.Update(testDBC(), uuid.New(), &domain.Estimacion{CodigoLote: "00012345"})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeNotFound {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeNotFound)
	}
}
