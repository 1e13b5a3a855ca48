package services

import (
	"bytes"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/estimaciones"
	"github.com/municatastro/catastro-backend/internal/data/repos/fichas"
	"github.com/municatastro/catastro-backend/internal/data/repos/fotos"
	"github.com/municatastro/catastro-backend/internal/data/repos/lotes"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
)

// The fakes embed the repo interface and override only what the test under
// scrutiny touches; an unexpected call panics on the nil embed.

type fakeLoteRepo struct {
	lotes.LoteRepo
	byCodigo map[string]*domain.Lote
	byID     map[uuid.UUID]*domain.Lote
	exists   bool
	created  []*domain.Lote
	updated  []*domain.Lote
}

func (f *fakeLoteRepo) GetByCodigo(_ dbctx.Context, codigoLote string) (*domain.Lote, error) {
	return f.byCodigo[codigoLote], nil
}

func (f *fakeLoteRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Lote, error) {
	return f.byID[id], nil
}

func (f *fakeLoteRepo) ExistsByCodigo(_ dbctx.Context, _, _, _ string) (bool, error) {
	return f.exists, nil
}

func (f *fakeLoteRepo) Create(_ dbctx.Context, lote *domain.Lote) (*domain.Lote, error) {
	f.created = append(f.created, lote)
	return lote, nil
}

func (f *fakeLoteRepo) Update(_ dbctx.Context, lote *domain.Lote) (*domain.Lote, error) {
	f.updated = append(f.updated, lote)
	return lote, nil
}

type fakeEstimacionRepo struct {
	estimaciones.EstimacionRepo
	byID           map[uuid.UUID]*domain.Estimacion
	created        []*domain.Estimacion
	updated        []*domain.Estimacion
	deletedLoteIDs []uuid.UUID
}

func (f *fakeEstimacionRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Estimacion, error) {
	return f.byID[id], nil
}

func (f *fakeEstimacionRepo) Create(_ dbctx.Context, est *domain.Estimacion) (*domain.Estimacion, error) {
	f.created = append(f.created, est)
	return est, nil
}

func (f *fakeEstimacionRepo) Update(_ dbctx.Context, est *domain.Estimacion) (*domain.Estimacion, error) {
	f.updated = append(f.updated, est)
	return est, nil
}

func (f *fakeEstimacionRepo) DeleteByLoteID(_ dbctx.Context, loteID uuid.UUID) error {
	f.deletedLoteIDs = append(f.deletedLoteIDs, loteID)
	return nil
}

type fakeFotoRepo struct {
	fotos.FotoRepo
	byID      map[uuid.UUID]*domain.Foto
	created   []*domain.Foto
	createErr error
	deleted   []uuid.UUID
}

func (f *fakeFotoRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Foto, error) {
	return f.byID[id], nil
}

func (f *fakeFotoRepo) Create(_ dbctx.Context, foto *domain.Foto) (*domain.Foto, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, foto)
	return foto, nil
}

func (f *fakeFotoRepo) Delete(_ dbctx.Context, id uuid.UUID) (bool, error) {
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakeFichaRepo struct {
	fichas.FichaRepo
	byID        map[uuid.UUID]*domain.FichaCatastral
	byCodigo    map[string]*domain.FichaCatastral
	codigoCalls int
}

func (f *fakeFichaRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.FichaCatastral, error) {
	return f.byID[id], nil
}

func (f *fakeFichaRepo) GetByCodigoCompleto(_ dbctx.Context, codigoLote, codigoUnidad, codigoPiso string) (*domain.FichaCatastral, error) {
	f.codigoCalls++
	return f.byCodigo[codigoLote+"|"+codigoUnidad+"|"+codigoPiso], nil
}

// fakeBucket is an in-memory BucketService.
type fakeBucket struct {
	objects    map[string][]byte
	deleted    []string
	failUpload bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (b *fakeBucket) UploadFile(_ dbctx.Context, key string, file io.Reader) error {
	if b.failUpload {
		return errors.New("bucket unavailable")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return err
	}
	b.objects[key] = buf.Bytes()
	return nil
}

func (b *fakeBucket) DeleteFile(_ dbctx.Context, key string) error {
	b.deleted = append(b.deleted, key)
	delete(b.objects, key)
	return nil
}

func (b *fakeBucket) GetPublicURL(key string) string {
	return "https://storage.googleapis.com/test-bucket/" + key
}

func (b *fakeBucket) IsManagedURL(rawURL string) bool {
	return b.KeyFromURL(rawURL) != ""
}

func (b *fakeBucket) KeyFromURL(rawURL string) string {
	const prefix = "https://storage.googleapis.com/test-bucket/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):]
	}
	return ""
}
