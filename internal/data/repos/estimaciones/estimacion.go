package estimaciones

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type EstimacionRepo interface {
	Create(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Estimacion, error)
	GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Estimacion, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) (*domain.Estimacion, error)
	GetByTipoTerreno(dbc dbctx.Context, tipoTerreno string) ([]*domain.Estimacion, error)
	Update(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	DeleteByLoteID(dbc dbctx.Context, loteID uuid.UUID) error
	CountByTipoTerreno(dbc dbctx.Context, tipoTerreno string) (int64, error)
}

type estimacionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEstimacionRepo(db *gorm.DB, baseLog *logger.Logger) EstimacionRepo {
	repoLog := baseLog.With("repo", "EstimacionRepo")
	return &estimacionRepo{db: db, log: repoLog}
}

func (r *estimacionRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *estimacionRepo) Create(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error) {
	if err := r.handle(dbc).Create(estimacion).Error; err != nil {
		return nil, err
	}
	return estimacion, nil
}

func (r *estimacionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Estimacion, error) {
	var result domain.Estimacion
	err := r.handle(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *estimacionRepo) GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Estimacion, error) {
	var results []*domain.Estimacion
	if err := r.handle(dbc).
		Where("lote_id = ?", loteID).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *estimacionRepo) GetByCodigoLote(dbc dbctx.Context, codigoLote string) (*domain.Estimacion, error) {
	var result domain.Estimacion
	err := r.handle(dbc).
		Where("codigo_lote = ?", codigoLote).
		Order("fecha_creacion DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *estimacionRepo) GetByTipoTerreno(dbc dbctx.Context, tipoTerreno string) ([]*domain.Estimacion, error) {
	var results []*domain.Estimacion
	if err := r.handle(dbc).
		Where("tipo_terreno = ?", tipoTerreno).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *estimacionRepo) Update(dbc dbctx.Context, estimacion *domain.Estimacion) (*domain.Estimacion, error) {
	if err := r.handle(dbc).Save(estimacion).Error; err != nil {
		return nil, err
	}
	return estimacion, nil
}

func (r *estimacionRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	result := r.handle(dbc).Where("id = ?", id).Delete(&domain.Estimacion{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *estimacionRepo) DeleteByLoteID(dbc dbctx.Context, loteID uuid.UUID) error {
	return r.handle(dbc).
		Where("lote_id = ?", loteID).
		Delete(&domain.Estimacion{}).Error
}

func (r *estimacionRepo) CountByTipoTerreno(dbc dbctx.Context, tipoTerreno string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Estimacion{}).
		Where("tipo_terreno = ?", tipoTerreno).
		Count(&count).Error
	return count, err
}
