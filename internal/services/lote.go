package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/data/repos/estimaciones"
	"github.com/municatastro/catastro-backend/internal/data/repos/fotos"
	"github.com/municatastro/catastro-backend/internal/data/repos/lotes"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

// LoteService manages physical parcels. The sector/manzana/lote code triple
// is assigned once at creation and never changes; only the georeference
// fields are updatable. Deleting a lot takes its estimaciones and fotos
// with it, including the stored photo objects.
type LoteService interface {
	Create(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Lote, error)
	GetByCodigo(dbc dbctx.Context, codigoLote string) (*domain.Lote, error)
	GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.Lote, error)
	GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.Lote, error)
	List(dbc dbctx.Context, page, size int) ([]*domain.Lote, error)
	Update(dbc dbctx.Context, id uuid.UUID, in *domain.Lote) (*domain.Lote, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountBySector(dbc dbctx.Context, codigoSector string) (int64, error)
	CountByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) (int64, error)
}

type loteService struct {
	db             *gorm.DB
	log            *logger.Logger
	loteRepo       lotes.LoteRepo
	estimacionRepo estimaciones.EstimacionRepo
	fotoRepo       fotos.FotoRepo
	bucket         BucketService
}

func NewLoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	loteRepo lotes.LoteRepo,
	estimacionRepo estimaciones.EstimacionRepo,
	fotoRepo fotos.FotoRepo,
	bucket BucketService,
) LoteService {
	return &loteService{
		db:             db,
		log:            baseLog.With("service", "LoteService"),
		loteRepo:       loteRepo,
		estimacionRepo: estimacionRepo,
		fotoRepo:       fotoRepo,
		bucket:         bucket,
	}
}

func (s *loteService) Create(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error) {
	if err := validateLoteCodigo(lote); err != nil {
		return nil, err
	}

	exists, err := s.loteRepo.ExistsByCodigo(dbc, lote.CodigoSector, lote.CodigoManzana, lote.CodigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if exists {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateLotCode,
			fmt.Errorf("ya existe un lote con código %s-%s-%s",
				lote.CodigoSector, lote.CodigoManzana, lote.CodigoLote))
	}

	lote.ID = uuid.New()
	now := time.Now()
	lote.FechaCreacion = now
	lote.FechaModificacion = now

	if _, err := s.loteRepo.Create(dbc, lote); err != nil {
		if uniqueViolation(err, "uq_lote_codigo") {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateLotCode,
				fmt.Errorf("ya existe un lote con código %s-%s-%s",
					lote.CodigoSector, lote.CodigoManzana, lote.CodigoLote))
		}
		return nil, apierr.Storage(err)
	}
	s.log.Info("Lote created", "lote_id", lote.ID,
		"codigo", lote.CodigoSector+"-"+lote.CodigoManzana+"-"+lote.CodigoLote)
	return lote, nil
}

func (s *loteService) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Lote, error) {
	lote, err := s.loteRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if lote == nil {
		return nil, apierr.NotFound(fmt.Errorf("lote %s no existe", id))
	}
	return lote, nil
}

func (s *loteService) GetByCodigo(dbc dbctx.Context, codigoLote string) (*domain.Lote, error) {
	if strings.TrimSpace(codigoLote) == "" {
		return nil, apierr.Validation(fmt.Errorf("codigo_lote es requerido"))
	}
	lote, err := s.loteRepo.GetByCodigo(dbc, codigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if lote == nil {
		return nil, apierr.NotFound(fmt.Errorf("lote %s no existe", codigoLote))
	}
	return lote, nil
}

func (s *loteService) GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.Lote, error) {
	results, err := s.loteRepo.GetBySector(dbc, codigoSector)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *loteService) GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.Lote, error) {
	results, err := s.loteRepo.GetByManzana(dbc, codigoSector, codigoManzana)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *loteService) List(dbc dbctx.Context, page, size int) ([]*domain.Lote, error) {
	results, err := s.loteRepo.List(dbc, page, size)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

// Update only touches the georeference. Any attempt to change a code field
// is rejected rather than silently ignored.
func (s *loteService) Update(dbc dbctx.Context, id uuid.UUID, in *domain.Lote) (*domain.Lote, error) {
	existing, err := s.loteRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if existing == nil {
		return nil, apierr.NotFound(fmt.Errorf("lote %s no existe", id))
	}

	if codeChanged(in.CodigoSector, existing.CodigoSector) ||
		codeChanged(in.CodigoManzana, existing.CodigoManzana) ||
		codeChanged(in.CodigoLote, existing.CodigoLote) {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeImmutableField,
			fmt.Errorf("los códigos de lote no se pueden modificar"))
	}

	existing.Latitud = in.Latitud
	existing.Longitud = in.Longitud
	existing.PrecisionMetros = in.PrecisionMetros
	existing.FechaModificacion = time.Now()

	if _, err := s.loteRepo.Update(dbc, existing); err != nil {
		return nil, apierr.Storage(err)
	}
	return existing, nil
}

func (s *loteService) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	lote, err := s.loteRepo.GetByID(dbc, id)
	if err != nil {
		return false, apierr.Storage(err)
	}
	if lote == nil {
		return false, nil
	}

	fotosDelLote, err := s.fotoRepo.GetByLoteID(dbc, id)
	if err != nil {
		return false, apierr.Storage(err)
	}

	var deleted bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if err := s.estimacionRepo.DeleteByLoteID(txc, id); err != nil {
			return err
		}
		if err := s.fotoRepo.DeleteByLoteID(txc, id); err != nil {
			return err
		}
		var err error
		deleted, err = s.loteRepo.Delete(txc, id)
		return err
	})
	if err != nil {
		return false, apierr.Storage(err)
	}

	// Best effort: the rows are gone, a leftover object is only orphaned
	// storage, never inconsistent data.
	for _, f := range fotosDelLote {
		if key := s.bucket.KeyFromURL(f.URL); key != "" {
			if err := s.bucket.DeleteFile(dbc, key); err != nil {
				s.log.Warn("Failed deleting photo object", "key", key, "error", err)
			}
		}
	}

	if deleted {
		s.log.Info("Lote deleted", "lote_id", id, "fotos", len(fotosDelLote))
	}
	return deleted, nil
}

func (s *loteService) CountBySector(dbc dbctx.Context, codigoSector string) (int64, error) {
	count, err := s.loteRepo.CountBySector(dbc, codigoSector)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func (s *loteService) CountByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) (int64, error) {
	count, err := s.loteRepo.CountByManzana(dbc, codigoSector, codigoManzana)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func codeChanged(incoming, current string) bool {
	incoming = strings.TrimSpace(incoming)
	return incoming != "" && incoming != current
}

func validateLoteCodigo(lote *domain.Lote) error {
	if lote == nil {
		return apierr.Validation(fmt.Errorf("lote requerido"))
	}
	if len(strings.TrimSpace(lote.CodigoSector)) != 2 {
		return apierr.Validation(fmt.Errorf("codigo_sector debe tener 2 caracteres"))
	}
	if len(strings.TrimSpace(lote.CodigoManzana)) != 3 {
		return apierr.Validation(fmt.Errorf("codigo_manzana debe tener 3 caracteres"))
	}
	if !esCodigoLoteValido(lote.CodigoLote) {
		return apierr.Validation(fmt.Errorf("codigo_lote debe tener exactamente 8 dígitos"))
	}
	return nil
}

func esCodigoLoteValido(codigo string) bool {
	if len(codigo) != 8 {
		return false
	}
	for _, r := range codigo {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
