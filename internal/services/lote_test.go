package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/testutil"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
)

func TestLoteCreateRejectsDuplicateCodigo(t *testing.T) {
	log := testutil.Logger(t)
	loteRepo := &fakeLoteRepo{exists: true}
	svc := NewLoteService(nil, log, loteRepo, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())

	_, err := svc.Create(testDBC(), &domain.Lote{
		CodigoSector: "01", CodigoManzana: "002", CodigoLote: "00012345",
	})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeDuplicateLotCode {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeDuplicateLotCode)
	}
	if len(loteRepo.created) != 0 {
		t.Error("lote created despite duplicate code")
	}
}

func TestLoteCreateRequiresCodes(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewLoteService(nil, log, &fakeLoteRepo{}, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())

	for _, in := range []*domain.Lote{
		{CodigoManzana: "002", CodigoLote: "00012345"},
		{CodigoSector: "01", CodigoLote: "00012345"},
		{CodigoSector: "01", CodigoManzana: "002"},
	} {
		_, err := svc.Create(testDBC(), in)
		ae, ok := apierr.As(err)
		if !ok || ae.Code != apierr.CodeValidationFailed {
			t.Errorf("in=%+v err = %v, want code %s", in, err, apierr.CodeValidationFailed)
		}
	}
}

func TestLoteCreateRejectsMalformedCodes(t *testing.T) {
	log := testutil.Logger(t)

	for _, in := range []*domain.Lote{
		{CodigoSector: "SECTOR-TOO-LONG", CodigoManzana: "M", CodigoLote: "not8digits!"},
		{CodigoSector: "01", CodigoManzana: "002", CodigoLote: "1234567"},
		{CodigoSector: "01", CodigoManzana: "002", CodigoLote: "123456789"},
		{CodigoSector: "01", CodigoManzana: "002", CodigoLote: "1234567a"},
		{CodigoSector: "0", CodigoManzana: "002", CodigoLote: "00012345"},
		{CodigoSector: "01", CodigoManzana: "02", CodigoLote: "00012345"},
	} {
		loteRepo := &fakeLoteRepo{}
		svc := NewLoteService(nil, log, loteRepo, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())
		_, err := svc.Create(testDBC(), in)
		ae, ok := apierr.As(err)
		if !ok || ae.Code != apierr.CodeValidationFailed {
			t.Errorf("in=%+v err = %v, want code %s", in, err, apierr.CodeValidationFailed)
		}
		if len(loteRepo.created) != 0 {
			t.Errorf("in=%+v created despite malformed codes", in)
		}
	}
}

func TestLoteUpdateRejectsCodeChange(t *testing.T) {
	log := testutil.Logger(t)
	existing := &domain.Lote{
		ID: uuid.New(), CodigoSector: "01", CodigoManzana: "002", CodigoLote: "00012345",
	}
	loteRepo := &fakeLoteRepo{byID: map[uuid.UUID]*domain.Lote{existing.ID: existing}}
	svc := NewLoteService(nil, log, loteRepo, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())

	_, err := svc.Update(testDBC(), existing.ID, &domain.Lote{CodigoLote: "00099999"})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeImmutableField {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeImmutableField)
	}
	if len(loteRepo.updated) != 0 {
		t.Error("lote updated despite immutable code change")
	}
}

func TestLoteUpdateGeoreference(t *testing.T) {
	log := testutil.Logger(t)
	existing := &domain.Lote{
		ID: uuid.New(), CodigoSector: "01", CodigoManzana: "002", CodigoLote: "00012345",
	}
	loteRepo := &fakeLoteRepo{byID: map[uuid.UUID]*domain.Lote{existing.ID: existing}}
	svc := NewLoteService(nil, log, loteRepo, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())

	lat := -12.05
	lon := -77.03
	out, err := svc.Update(testDBC(), existing.ID, &domain.Lote{
		// Same codes are accepted, they are just not a change.
		CodigoSector: "01", CodigoManzana: "002", CodigoLote: "00012345",
		Latitud: &lat, Longitud: &lon,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Latitud == nil || *out.Latitud != lat {
		t.Errorf("Latitud not updated: %v", out.Latitud)
	}
	if out.CodigoLote != "00012345" {
		t.Errorf("CodigoLote changed to %q", out.CodigoLote)
	}
	if len(loteRepo.updated) != 1 {
		t.Fatalf("updated %d rows, want 1", len(loteRepo.updated))
	}
}

func TestLoteUpdateNotFound(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewLoteService(nil, log, &fakeLoteRepo{byID: map[uuid.UUID]*domain.Lote{}}, &fakeEstimacionRepo{}, &fakeFotoRepo{}, newFakeBucket())

	_, err := svc.Update(testDBC(), uuid.New(), &domain.Lote{})
	ae, ok := apierr.As(err)
	if !ok || ae.Code != apierr.CodeNotFound {
		t.Fatalf("err = %v, want code %s", err, apierr.CodeNotFound)
	}
}
