package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/estimaciones"
	"github.com/municatastro/catastro-backend/internal/data/repos/lotes"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

// EstimacionService records field survey summaries against an existing lot.
// NumUnidadesCatastrales is always recomputed from the seven per-use counts;
// whatever the client sends in that field is discarded.
type EstimacionService interface {
	Create(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Estimacion, error)
	GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Estimacion, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) (*domain.Estimacion, error)
	GetByTipoTerreno(dbc dbctx.Context, tipoTerreno string) ([]*domain.Estimacion, error)
	Update(dbc dbctx.Context, id uuid.UUID, in *domain.Estimacion) (*domain.Estimacion, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	DeleteByLote(dbc dbctx.Context, codigoLote string) error
	CountByTipoTerreno(dbc dbctx.Context, tipoTerreno string) (int64, error)
}

type estimacionService struct {
	log            *logger.Logger
	estimacionRepo estimaciones.EstimacionRepo
	loteRepo       lotes.LoteRepo
}

func NewEstimacionService(
	baseLog *logger.Logger,
	estimacionRepo estimaciones.EstimacionRepo,
	loteRepo lotes.LoteRepo,
) EstimacionService {
	return &estimacionService{
		log:            baseLog.With("service", "EstimacionService"),
		estimacionRepo: estimacionRepo,
		loteRepo:       loteRepo,
	}
}

func (s *estimacionService) Create(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error) {
	if err := validateEstimacion(estimacion); err != nil {
		return nil, err
	}

	lote, err := s.loteRepo.GetByCodigo(dbc, estimacion.CodigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if lote == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeLoteNotFound,
			fmt.Errorf("lote %s no existe", estimacion.CodigoLote))
	}

	estimacion.ID = uuid.New()
	estimacion.LoteID = lote.ID
	estimacion.NumUnidadesCatastrales = estimacion.TotalUnidades()
	now := time.Now()
	estimacion.FechaCreacion = now
	estimacion.FechaModificacion = now

	if _, err := s.estimacionRepo.Create(dbc, estimacion); err != nil {
		return nil, apierr.Storage(err)
	}
	s.log.Info("Estimacion created", "estimacion_id", estimacion.ID,
		"codigo_lote", estimacion.CodigoLote, "unidades", estimacion.NumUnidadesCatastrales)
	return estimacion, nil
}

func (s *estimacionService) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Estimacion, error) {
	est, err := s.estimacionRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if est == nil {
		return nil, apierr.NotFound(fmt.Errorf("estimación %s no existe", id))
	}
	return est, nil
}

func (s *estimacionService) GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Estimacion, error) {
	results, err := s.estimacionRepo.GetByLoteID(dbc, loteID)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

// GetByCodigoLote returns the most recent estimación for the lot.
func (s *estimacionService) GetByCodigoLote(dbc dbctx.Context, codigoLote string) (*domain.Estimacion, error) {
	if strings.TrimSpace(codigoLote) == "" {
		return nil, apierr.Validation(fmt.Errorf("codigo_lote es requerido"))
	}
	est, err := s.estimacionRepo.GetByCodigoLote(dbc, codigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if est == nil {
		return nil, apierr.NotFound(fmt.Errorf("no hay estimaciones para el lote %s", codigoLote))
	}
	return est, nil
}

func (s *estimacionService) GetByTipoTerreno(dbc dbctx.Context, tipoTerreno string) ([]*domain.Estimacion, error) {
	results, err := s.estimacionRepo.GetByTipoTerreno(dbc, tipoTerreno)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *estimacionService) Update(dbc dbctx.Context, id uuid.UUID, in *domain.Estimacion) (*domain.Estimacion, error) {
	if err := validateEstimacion(in); err != nil {
		return nil, err
	}

	existing, err := s.estimacionRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if existing == nil {
		return nil, apierr.NotFound(fmt.Errorf("estimación %s no existe", id))
	}

	in.ID = existing.ID
	in.LoteID = existing.LoteID
	in.CodigoLote = existing.CodigoLote
	in.NumUnidadesCatastrales = in.TotalUnidades()
	in.FechaCreacion = existing.FechaCreacion
	in.FechaModificacion = time.Now()

	if _, err := s.estimacionRepo.Update(dbc, in); err != nil {
		return nil, apierr.Storage(err)
	}
	return in, nil
}

func (s *estimacionService) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.estimacionRepo.Delete(dbc, id)
	if err != nil {
		return false, apierr.Storage(err)
	}
	return deleted, nil
}

// DeleteByLote removes every estimación recorded against the lot.
func (s *estimacionService) DeleteByLote(dbc dbctx.Context, codigoLote string) error {
	if strings.TrimSpace(codigoLote) == "" {
		return apierr.Validation(fmt.Errorf("codigo_lote es requerido"))
	}
	lote, err := s.loteRepo.GetByCodigo(dbc, codigoLote)
	if err != nil {
		return apierr.Storage(err)
	}
	if lote == nil {
		return apierr.New(http.StatusNotFound, apierr.CodeLoteNotFound,
			fmt.Errorf("lote %s no existe", codigoLote))
	}
	if err := s.estimacionRepo.DeleteByLoteID(dbc, lote.ID); err != nil {
		return apierr.Storage(err)
	}
	s.log.Info("Estimaciones deleted", "codigo_lote", codigoLote)
	return nil
}

func (s *estimacionService) CountByTipoTerreno(dbc dbctx.Context, tipoTerreno string) (int64, error) {
	count, err := s.estimacionRepo.CountByTipoTerreno(dbc, tipoTerreno)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func validateEstimacion(e *domain.Estimacion) error {
	if e == nil {
		return apierr.Validation(fmt.Errorf("estimación requerida"))
	}
	if strings.TrimSpace(e.CodigoLote) == "" {
		return apierr.Validation(fmt.Errorf("codigo_lote es requerido"))
	}
	for _, n := range []int{
		e.NumPisos, e.NumViviendas, e.NumComercios, e.NumIndustrias,
		e.NumEducacion, e.NumSalud, e.NumReligion, e.NumEstacionamientos,
		e.NumMedidoresLuz, e.NumMedidoresAgua, e.NumTimbres, e.NumSinServicio,
	} {
		if n < 0 {
			return apierr.Validation(fmt.Errorf("los conteos no pueden ser negativos"))
		}
	}
	return nil
}
