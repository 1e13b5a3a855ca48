package fichas

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type FichaRepo interface {
	Create(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.FichaCatastral, error)
	GetByCodigoCompleto(dbc dbctx.Context, codigoLote, codigoUnidad, codigoPiso string) (*domain.FichaCatastral, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.FichaCatastral, error)
	GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.FichaCatastral, error)
	GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.FichaCatastral, error)
	GetByTipoPredio(dbc dbctx.Context, tipoPredio string) ([]*domain.FichaCatastral, error)
	GetByUsoPredio(dbc dbctx.Context, usoPredio string) ([]*domain.FichaCatastral, error)
	GetByClasificacion(dbc dbctx.Context, clasificacionPredio string) ([]*domain.FichaCatastral, error)
	GetByFechaLevantamiento(dbc dbctx.Context, inicio, fin time.Time) ([]*domain.FichaCatastral, error)
	GetByAreaTerreno(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error)
	GetByAreaConstruccion(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error)
	List(dbc dbctx.Context, page, size int) ([]*domain.FichaCatastral, error)
	Update(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountByCodigoLote(dbc dbctx.Context, codigoLote string) (int64, error)
	CountBySector(dbc dbctx.Context, codigoSector string) (int64, error)
	CountByTipoPredio(dbc dbctx.Context, tipoPredio string) (int64, error)
}

type fichaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFichaRepo(db *gorm.DB, baseLog *logger.Logger) FichaRepo {
	repoLog := baseLog.With("repo", "FichaRepo")
	return &fichaRepo{db: db, log: repoLog}
}

func (r *fichaRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *fichaRepo) Create(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error) {
	if err := r.handle(dbc).Create(ficha).Error; err != nil {
		return nil, err
	}
	return ficha, nil
}

func (r *fichaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.FichaCatastral, error) {
	var result domain.FichaCatastral
	err := r.handle(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *fichaRepo) GetByCodigoCompleto(dbc dbctx.Context, codigoLote, codigoUnidad, codigoPiso string) (*domain.FichaCatastral, error) {
	var result domain.FichaCatastral
	err := r.handle(dbc).
		Where("codigo_lote = ? AND codigo_unidad = ? AND codigo_piso = ?",
			codigoLote, codigoUnidad, codigoPiso).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *fichaRepo) GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("codigo_lote = ?", codigoLote).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("codigo_sector = ?", codigoSector).
		Order("codigo_manzana, codigo_lote").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("codigo_sector = ? AND codigo_manzana = ?", codigoSector, codigoManzana).
		Order("codigo_lote").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByTipoPredio(dbc dbctx.Context, tipoPredio string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("tipo_predio = ?", tipoPredio).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByUsoPredio(dbc dbctx.Context, usoPredio string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("uso_predio = ?", usoPredio).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByClasificacion(dbc dbctx.Context, clasificacionPredio string) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("clasificacion_predio = ?", clasificacionPredio).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByFechaLevantamiento(dbc dbctx.Context, inicio, fin time.Time) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("fecha_levantamiento BETWEEN ? AND ?", inicio, fin).
		Order("fecha_levantamiento DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByAreaTerreno(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("area_terreno >= ? AND area_terreno <= ?", minArea, maxArea).
		Order("area_terreno DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) GetByAreaConstruccion(dbc dbctx.Context, minArea, maxArea float64) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if err := r.handle(dbc).
		Where("area_construccion >= ? AND area_construccion <= ?", minArea, maxArea).
		Order("area_construccion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) List(dbc dbctx.Context, page, size int) ([]*domain.FichaCatastral, error) {
	var results []*domain.FichaCatastral
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	if err := r.handle(dbc).
		Order("fecha_creacion DESC").
		Offset(page * size).
		Limit(size).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fichaRepo) Update(dbc dbctx.Context, ficha *domain.FichaCatastral) (*domain.FichaCatastral, error) {
	if err := r.handle(dbc).Save(ficha).Error; err != nil {
		return nil, err
	}
	return ficha, nil
}

func (r *fichaRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	result := r.handle(dbc).Where("id = ?", id).Delete(&domain.FichaCatastral{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *fichaRepo) CountByCodigoLote(dbc dbctx.Context, codigoLote string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.FichaCatastral{}).
		Where("codigo_lote = ?", codigoLote).
		Count(&count).Error
	return count, err
}

func (r *fichaRepo) CountBySector(dbc dbctx.Context, codigoSector string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.FichaCatastral{}).
		Where("codigo_sector = ?", codigoSector).
		Count(&count).Error
	return count, err
}

func (r *fichaRepo) CountByTipoPredio(dbc dbctx.Context, tipoPredio string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.FichaCatastral{}).
		Where("tipo_predio = ?", tipoPredio).
		Count(&count).Error
	return count, err
}
