package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/data/repos/fichas"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

// FichaService owns the ficha aggregate: the root row plus its titulares,
// construcciones and servicio. All child rows are written through here, in
// the root's transaction. Updates replace the child sets wholesale: the
// incoming payload is the complete new truth, existing children are deleted
// and the payload's children inserted in their place.
type FichaService interface {
	Create(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.FichaCatastral, error)
	GetByCodigoCompleto(dbc dbctx.Context, codigoLote, codigoUnidad, codigoPiso string) (*domain.FichaCatastral, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.FichaCatastral, error)
	GetByNumeroDocumento(dbc dbctx.Context, numeroDocumento string) ([]*domain.FichaCatastral, error)
	GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.FichaCatastral, error)
	GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.FichaCatastral, error)
	GetByTipoPredio(dbc dbctx.Context, tipoPredio string) ([]*domain.FichaCatastral, error)
	GetByUsoPredio(dbc dbctx.Context, usoPredio string) ([]*domain.FichaCatastral, error)
	GetByClasificacion(dbc dbctx.Context, clasificacionPredio string) ([]*domain.FichaCatastral, error)
	GetByFechaLevantamiento(dbc dbctx.Context, inicio, fin time.Time) ([]*domain.FichaCatastral, error)
	GetByAreaTerreno(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error)
	GetByAreaConstruccion(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error)
	List(dbc dbctx.Context, page, size int) ([]*domain.FichaCatastral, error)
	Update(dbc dbctx.Context, id uuid.UUID, in *domain.FichaCatastral) (*domain.FichaCatastral, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountByCodigoLote(dbc dbctx.Context, codigoLote string) (int64, error)
	CountBySector(dbc dbctx.Context, codigoSector string) (int64, error)
	CountByTipoPredio(dbc dbctx.Context, tipoPredio string) (int64, error)
}

type fichaService struct {
	db               *gorm.DB
	log              *logger.Logger
	fichaRepo        fichas.FichaRepo
	titularRepo      fichas.TitularRepo
	construccionRepo fichas.ConstruccionRepo
	servicioRepo     fichas.ServicioRepo
}

func NewFichaService(
	db *gorm.DB,
	baseLog *logger.Logger,
	fichaRepo fichas.FichaRepo,
	titularRepo fichas.TitularRepo,
	construccionRepo fichas.ConstruccionRepo,
	servicioRepo fichas.ServicioRepo,
) FichaService {
	return &fichaService{
		db:               db,
		log:              baseLog.With("service", "FichaService"),
		fichaRepo:        fichaRepo,
		titularRepo:      titularRepo,
		construccionRepo: construccionRepo,
		servicioRepo:     servicioRepo,
	}
}

func (s *fichaService) Create(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error) {
	if err := validateFicha(ficha); err != nil {
		return nil, err
	}

	if unidad, piso, ok := codigoCompleto(ficha); ok {
		existing, err := s.fichaRepo.GetByCodigoCompleto(dbc, ficha.CodigoLote, unidad, piso)
		if err != nil {
			return nil, apierr.Storage(err)
		}
		if existing != nil {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateFichaCode,
				fmt.Errorf("ya existe una ficha con código %s-%s-%s", ficha.CodigoLote, unidad, piso))
		}
	}

	ficha.ID = uuid.New()
	now := time.Now()
	ficha.FechaCreacion = now
	ficha.FechaModificacion = now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if _, err := s.fichaRepo.Create(txc, ficha); err != nil {
			return err
		}
		return s.insertChildren(txc, ficha)
	})
	if err != nil {
		if uniqueViolation(err, "uq_ficha_codigo_completo") {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateFichaCode,
				fmt.Errorf("ya existe una ficha con ese código completo"))
		}
		return nil, apierr.Storage(err)
	}

	s.log.Info("Ficha created", "ficha_id", ficha.ID, "codigo_lote", ficha.CodigoLote)
	return ficha, nil
}

func (s *fichaService) Update(dbc dbctx.Context, id uuid.UUID, in *domain.FichaCatastral) (*domain.FichaCatastral, error) {
	if err := validateFicha(in); err != nil {
		return nil, err
	}

	existing, err := s.fichaRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if existing == nil {
		return nil, apierr.NotFound(fmt.Errorf("ficha %s no existe", id))
	}

	if unidad, piso, ok := codigoCompleto(in); ok {
		other, err := s.fichaRepo.GetByCodigoCompleto(dbc, in.CodigoLote, unidad, piso)
		if err != nil {
			return nil, apierr.Storage(err)
		}
		if other != nil && other.ID != existing.ID {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateFichaCode,
				fmt.Errorf("ya existe una ficha con código %s-%s-%s", in.CodigoLote, unidad, piso))
		}
	}

	in.ID = existing.ID
	in.FechaCreacion = existing.FechaCreacion
	in.FechaModificacion = time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if _, err := s.fichaRepo.Update(txc, in); err != nil {
			return err
		}
		if err := s.deleteChildren(txc, in.ID); err != nil {
			return err
		}
		return s.insertChildren(txc, in)
	})
	if err != nil {
		if uniqueViolation(err, "uq_ficha_codigo_completo") {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeDuplicateFichaCode,
				fmt.Errorf("ya existe una ficha con ese código completo"))
		}
		return nil, apierr.Storage(err)
	}

	s.log.Info("Ficha updated", "ficha_id", in.ID,
		"titulares", len(in.Titulares), "construcciones", len(in.Construcciones))
	return in, nil
}

func (s *fichaService) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		if err := s.deleteChildren(txc, id); err != nil {
			return err
		}
		var err error
		deleted, err = s.fichaRepo.Delete(txc, id)
		return err
	})
	if err != nil {
		return false, apierr.Storage(err)
	}
	if deleted {
		s.log.Info("Ficha deleted", "ficha_id", id)
	}
	return deleted, nil
}

func (s *fichaService) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.FichaCatastral, error) {
	ficha, err := s.fichaRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if ficha == nil {
		return nil, apierr.NotFound(fmt.Errorf("ficha %s no existe", id))
	}
	if err := s.hydrate(dbc, ficha); err != nil {
		return nil, apierr.Storage(err)
	}
	return ficha, nil
}

func (s *fichaService) GetByCodigoCompleto(dbc dbctx.Context, codigoLote, codigoUnidad, codigoPiso string) (*domain.FichaCatastral, error) {
	if strings.TrimSpace(codigoLote) == "" || strings.TrimSpace(codigoUnidad) == "" || strings.TrimSpace(codigoPiso) == "" {
		return nil, apierr.Validation(fmt.Errorf("codigo_lote, codigo_unidad y codigo_piso son requeridos"))
	}
	ficha, err := s.fichaRepo.GetByCodigoCompleto(dbc, codigoLote, codigoUnidad, codigoPiso)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if ficha == nil {
		return nil, apierr.NotFound(fmt.Errorf("ficha %s-%s-%s no existe", codigoLote, codigoUnidad, codigoPiso))
	}
	if err := s.hydrate(dbc, ficha); err != nil {
		return nil, apierr.Storage(err)
	}
	return ficha, nil
}

func (s *fichaService) GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetByCodigoLote(dbc, codigoLote))
}

// GetByNumeroDocumento returns the fichas owned by the holder of the given
// document, each hydrated with its children.
func (s *fichaService) GetByNumeroDocumento(dbc dbctx.Context, numeroDocumento string) ([]*domain.FichaCatastral, error) {
	if strings.TrimSpace(numeroDocumento) == "" {
		return nil, apierr.Validation(fmt.Errorf("numero_documento es requerido"))
	}
	titulares, err := s.titularRepo.GetByNumeroDocumento(dbc, numeroDocumento)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	seen := make(map[uuid.UUID]bool, len(titulares))
	var results []*domain.FichaCatastral
	for _, t := range titulares {
		if seen[t.FichaID] {
			continue
		}
		seen[t.FichaID] = true
		ficha, err := s.fichaRepo.GetByID(dbc, t.FichaID)
		if err != nil {
			return nil, apierr.Storage(err)
		}
		if ficha == nil {
			continue
		}
		if err := s.hydrate(dbc, ficha); err != nil {
			return nil, apierr.Storage(err)
		}
		results = append(results, ficha)
	}
	return results, nil
}

func (s *fichaService) GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetBySector(dbc, codigoSector))
}

func (s *fichaService) GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetByManzana(dbc, codigoSector, codigoManzana))
}

func (s *fichaService) GetByTipoPredio(dbc dbctx.Context, tipoPredio string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetByTipoPredio(dbc, tipoPredio))
}

func (s *fichaService) GetByUsoPredio(dbc dbctx.Context, usoPredio string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetByUsoPredio(dbc, usoPredio))
}

func (s *fichaService) GetByClasificacion(dbc dbctx.Context, clasificacionPredio string) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.GetByClasificacion(dbc, clasificacionPredio))
}

func (s *fichaService) GetByFechaLevantamiento(dbc dbctx.Context, inicio, fin time.Time) ([]*domain.FichaCatastral, error) {
	if fin.Before(inicio) {
		return nil, apierr.Validation(fmt.Errorf("rango de fechas inválido: fin anterior a inicio"))
	}
	return s.hydrated(dbc)(s.fichaRepo.GetByFechaLevantamiento(dbc, inicio, fin))
}

func (s *fichaService) GetByAreaTerreno(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error) {
	if maxArea < minArea {
		return nil, apierr.Validation(fmt.Errorf("rango de áreas inválido: max menor que min"))
	}
	return s.hydrated(dbc)(s.fichaRepo.GetByAreaTerreno(dbc, minArea, maxArea))
}

func (s *fichaService) GetByAreaConstruccion(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error) {
	if maxArea < minArea {
		return nil, apierr.Validation(fmt.Errorf("rango de áreas inválido: max menor que min"))
	}
	return s.hydrated(dbc)(s.fichaRepo.GetByAreaConstruccion(dbc, minArea, maxArea))
}

func (s *fichaService) List(dbc dbctx.Context, page, size int) ([]*domain.FichaCatastral, error) {
	return s.hydrated(dbc)(s.fichaRepo.List(dbc, page, size))
}

func (s *fichaService) CountByCodigoLote(dbc dbctx.Context, codigoLote string) (int64, error) {
	count, err := s.fichaRepo.CountByCodigoLote(dbc, codigoLote)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func (s *fichaService) CountBySector(dbc dbctx.Context, codigoSector string) (int64, error) {
	count, err := s.fichaRepo.CountBySector(dbc, codigoSector)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func (s *fichaService) CountByTipoPredio(dbc dbctx.Context, tipoPredio string) (int64, error) {
	count, err := s.fichaRepo.CountByTipoPredio(dbc, tipoPredio)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return count, nil
}

func (s *fichaService) insertChildren(txc dbctx.Context, ficha *domain.FichaCatastral) error {
	now := time.Now()
	for _, t := range ficha.Titulares {
		t.ID = uuid.New()
		t.FichaID = ficha.ID
		t.FechaCreacion = now
	}
	if _, err := s.titularRepo.Create(txc, ficha.Titulares); err != nil {
		return err
	}
	for _, c := range ficha.Construcciones {
		c.ID = uuid.New()
		c.FichaID = ficha.ID
		c.FechaCreacion = now
	}
	if _, err := s.construccionRepo.Create(txc, ficha.Construcciones); err != nil {
		return err
	}
	if ficha.Servicio != nil {
		ficha.Servicio.ID = uuid.New()
		ficha.Servicio.FichaID = ficha.ID
		ficha.Servicio.FechaCreacion = now
		if _, err := s.servicioRepo.Create(txc, ficha.Servicio); err != nil {
			return err
		}
	}
	return nil
}

func (s *fichaService) deleteChildren(txc dbctx.Context, fichaID uuid.UUID) error {
	if err := s.titularRepo.DeleteByFichaID(txc, fichaID); err != nil {
		return err
	}
	if err := s.construccionRepo.DeleteByFichaID(txc, fichaID); err != nil {
		return err
	}
	return s.servicioRepo.DeleteByFichaID(txc, fichaID)
}

func (s *fichaService) hydrate(dbc dbctx.Context, ficha *domain.FichaCatastral) error {
	titulares, err := s.titularRepo.GetByFichaID(dbc, ficha.ID)
	if err != nil {
		return err
	}
	construcciones, err := s.construccionRepo.GetByFichaID(dbc, ficha.ID)
	if err != nil {
		return err
	}
	servicio, err := s.servicioRepo.GetByFichaID(dbc, ficha.ID)
	if err != nil {
		return err
	}
	ficha.Titulares = titulares
	ficha.Construcciones = construcciones
	ficha.Servicio = servicio
	return nil
}

// hydrated wraps a repo list result, attaching children to every ficha.
func (s *fichaService) hydrated(dbc dbctx.Context) func([]*domain.FichaCatastral, error) ([]*domain.FichaCatastral, error) {
	return func(results []*domain.FichaCatastral, err error) ([]*domain.FichaCatastral, error) {
		if err != nil {
			return nil, apierr.Storage(err)
		}
		for _, f := range results {
			if err := s.hydrate(dbc, f); err != nil {
				return nil, apierr.Storage(err)
			}
		}
		return results, nil
	}
}

func codigoCompleto(f *domain.FichaCatastral) (unidad, piso string, ok bool) {
	if f.CodigoUnidad == nil || f.CodigoPiso == nil {
		return "", "", false
	}
	unidad = strings.TrimSpace(*f.CodigoUnidad)
	piso = strings.TrimSpace(*f.CodigoPiso)
	if unidad == "" || piso == "" {
		return "", "", false
	}
	return unidad, piso, true
}

// uniqueViolation reports whether err is a Postgres duplicate-key error on
// the named constraint. The service pre-checks can miss a concurrent writer;
// the unique indexes cannot, so their violations map back to domain codes.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func validateFicha(f *domain.FichaCatastral) error {
	if f == nil {
		return apierr.Validation(fmt.Errorf("ficha requerida"))
	}
	if !esCodigoLoteValido(strings.TrimSpace(f.CodigoLote)) {
		return apierr.Validation(fmt.Errorf("codigo_lote debe tener exactamente 8 dígitos"))
	}
	for i, t := range f.Titulares {
		if t == nil {
			return apierr.Validation(fmt.Errorf("titular %d vacío", i))
		}
		switch t.TipoTitular {
		case domain.TipoTitularJuridica:
			if strings.TrimSpace(t.RazonSocial) == "" {
				return apierr.Validation(fmt.Errorf("titular %d: razon_social es requerida para persona jurídica", i))
			}
		default:
			if strings.TrimSpace(t.NumeroDocumento) == "" {
				return apierr.Validation(fmt.Errorf("titular %d: numero_documento es requerido", i))
			}
		}
		if t.PorcentajePropiedad != nil && (*t.PorcentajePropiedad < 0 || *t.PorcentajePropiedad > 100) {
			return apierr.Validation(fmt.Errorf("titular %d: porcentaje_propiedad fuera de rango", i))
		}
	}
	for i, c := range f.Construcciones {
		if c == nil {
			return apierr.Validation(fmt.Errorf("construccion %d vacía", i))
		}
		if c.AreaConstruida != nil && *c.AreaConstruida < 0 {
			return apierr.Validation(fmt.Errorf("construccion %d: area_construida negativa", i))
		}
	}
	return nil
}
