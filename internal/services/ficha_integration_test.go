package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/data/repos/fichas"
	"github.com/municatastro/catastro-backend/internal/data/repos/testutil"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
)

// These tests commit through db.Transaction, so they clean up after
// themselves instead of relying on a rolled-back test transaction.

func newFichaServiceForTest(t *testing.T) (FichaService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewFichaService(db, log,
		fichas.NewFichaRepo(db, log),
		fichas.NewTitularRepo(db, log),
		fichas.NewConstruccionRepo(db, log),
		fichas.NewServicioRepo(db, log),
	)
	return svc, db
}

func cleanupFichas(t *testing.T, db *gorm.DB, codigoLote string) {
	t.Helper()
	t.Cleanup(func() {
		// Cascade FKs take the children.
		db.Where("codigo_lote = ?", codigoLote).Delete(&domain.FichaCatastral{})
	})
}

func TestFichaAggregateLifecycle(t *testing.T) {
	svc, db := newFichaServiceForTest(t)
	codigo := testutil.RandomCodigoLote()
	cleanupFichas(t, db, codigo)
	dbc := testDBC()

	area := 80.0
	pct := 100.0
	created, err := svc.Create(dbc, &domain.FichaCatastral{
		CodigoLote: codigo,
		TipoPredio: "Casa Habitación",
		Titulares: []*domain.Titular{
			{TipoTitular: domain.TipoTitularNatural, NumeroDocumento: "11111111", Nombres: "Juan", PorcentajePropiedad: &pct},
		},
		Construcciones: []*domain.Construccion{
			{NombrePiso: "Piso 1", AreaConstruida: &area},
		},
		Servicio: &domain.Servicio{TieneLuz: true, TieneAgua: true},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Titulares) != 1 || len(got.Construcciones) != 1 || got.Servicio == nil {
		t.Fatalf("aggregate not fully persisted: titulares=%d construcciones=%d servicio=%v",
			len(got.Titulares), len(got.Construcciones), got.Servicio)
	}

	// Update with no titulares: the payload is the complete truth, the
	// previous owner set must be gone afterwards.
	updated, err := svc.Update(dbc, created.ID, &domain.FichaCatastral{
		CodigoLote: codigo,
		TipoPredio: "Comercio",
		Construcciones: []*domain.Construccion{
			{NombrePiso: "Piso 1", AreaConstruida: &area},
			{NombrePiso: "Piso 2"},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Update changed identity: %s -> %s", created.ID, updated.ID)
	}

	got, err = svc.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.TipoPredio != "Comercio" {
		t.Errorf("TipoPredio = %q, want Comercio", got.TipoPredio)
	}
	if len(got.Titulares) != 0 {
		t.Errorf("titulares after empty replace = %d, want 0", len(got.Titulares))
	}
	if len(got.Construcciones) != 2 {
		t.Errorf("construcciones after replace = %d, want 2", len(got.Construcciones))
	}
	if got.Servicio != nil {
		t.Errorf("servicio survived a payload without one: %+v", got.Servicio)
	}

	deleted, err := svc.Delete(dbc, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("Delete = false")
	}
	deleted, err = svc.Delete(dbc, created.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if deleted {
		t.Error("second Delete = true, want false")
	}
}

func TestFichaCreateAllOrNothing(t *testing.T) {
	svc, db := newFichaServiceForTest(t)
	codigo := testutil.RandomCodigoLote()
	cleanupFichas(t, db, codigo)
	dbc := testDBC()

	// numero_documento overflows its varchar(20); the child insert fails
	// and the whole aggregate, root included, must not persist.
	_, err := svc.Create(dbc, &domain.FichaCatastral{
		CodigoLote: codigo,
		Titulares: []*domain.Titular{
			{TipoTitular: domain.TipoTitularNatural, NumeroDocumento: strings.Repeat("9", 40)},
		},
	})
	if err == nil {
		t.Fatal("expected child insert failure")
	}

	var count int64
	if err := db.Model(&domain.FichaCatastral{}).Where("codigo_lote = ?", codigo).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("root row persisted despite failed child insert: count=%d", count)
	}
}

func TestFichaCreateDuplicateFullCodeAgainstDB(t *testing.T) {
	svc, db := newFichaServiceForTest(t)
	codigo := testutil.RandomCodigoLote()
	cleanupFichas(t, db, codigo)
	dbc := testDBC()

	base := &domain.FichaCatastral{
		CodigoLote:   codigo,
		CodigoUnidad: strPtr("001"),
		CodigoPiso:   strPtr("01"),
	}
	if _, err := svc.Create(dbc, base); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Create(dbc, &domain.FichaCatastral{
		CodigoLote:   codigo,
		CodigoUnidad: strPtr("001"),
		CodigoPiso:   strPtr("01"),
	})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeDuplicateFichaCode {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeDuplicateFichaCode)
	}
}

func TestFichaUniqueIndexViolationIsRecognized(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := fichas.NewFichaRepo(db, log)
	codigo := testutil.RandomCodigoLote()
	cleanupFichas(t, db, codigo)
	dbc := testDBC()

	// Two inserts straight through the repo, the way a racing writer that
	// slipped past the pre-check would land. The index rejects the second
	// and the error must map back to the duplicate code.
	first := &domain.FichaCatastral{
		ID: uuid.New(), CodigoLote: codigo,
		CodigoUnidad: strPtr("001"), CodigoPiso: strPtr("01"),
	}
	if _, err := repo.Create(dbc, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second := &domain.FichaCatastral{
		ID: uuid.New(), CodigoLote: codigo,
		CodigoUnidad: strPtr("001"), CodigoPiso: strPtr("01"),
	}
	_, err := repo.Create(dbc, second)
	if err == nil {
		t.Fatal("expected unique index violation")
	}
	if !uniqueViolation(err, "uq_ficha_codigo_completo") {
		t.Errorf("violation not recognized as duplicate full code: %v", err)
	}
}

func TestFichaGetByNumeroDocumento(t *testing.T) {
	svc, db := newFichaServiceForTest(t)
	codigo := testutil.RandomCodigoLote()
	cleanupFichas(t, db, codigo)
	dbc := testDBC()

	documento := "D" + codigo
	created, err := svc.Create(dbc, &domain.FichaCatastral{
		CodigoLote: codigo,
		Titulares: []*domain.Titular{
			{TipoTitular: domain.TipoTitularNatural, NumeroDocumento: documento, Nombres: "Rosa"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	results, err := svc.GetByNumeroDocumento(dbc, documento)
	if err != nil {
		t.Fatalf("GetByNumeroDocumento: %v", err)
	}
	if len(results) != 1 || results[0].ID != created.ID {
		t.Fatalf("results = %d fichas, want the created one", len(results))
	}
	if len(results[0].Titulares) != 1 {
		t.Errorf("ficha not hydrated: %d titulares", len(results[0].Titulares))
	}

	if results, err = svc.GetByNumeroDocumento(dbc, "no-existe-"+codigo); err != nil {
		t.Fatalf("GetByNumeroDocumento unknown: %v", err)
	} else if len(results) != 0 {
		t.Errorf("unknown document returned %d fichas", len(results))
	}
}
