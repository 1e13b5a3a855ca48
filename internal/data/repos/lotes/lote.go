package lotes

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type LoteRepo interface {
	Create(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Lote, error)
	GetByCodigo(dbc dbctx.Context, codigoLote string) (*domain.Lote, error)
	ExistsByCodigo(dbc dbctx.Context, codigoSector, codigoManzana, codigoLote string) (bool, error)
	GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.Lote, error)
	GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.Lote, error)
	List(dbc dbctx.Context, page, size int) ([]*domain.Lote, error)
	Update(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountBySector(dbc dbctx.Context, codigoSector string) (int64, error)
	CountByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) (int64, error)
}

type loteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoteRepo(db *gorm.DB, baseLog *logger.Logger) LoteRepo {
	repoLog := baseLog.With("repo", "LoteRepo")
	return &loteRepo{db: db, log: repoLog}
}

func (r *loteRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *loteRepo) Create(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error) {
	if err := r.handle(dbc).Create(lote).Error; err != nil {
		return nil, err
	}
	return lote, nil
}

func (r *loteRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Lote, error) {
	var result domain.Lote
	err := r.handle(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *loteRepo) GetByCodigo(dbc dbctx.Context, codigoLote string) (*domain.Lote, error) {
	var result domain.Lote
	err := r.handle(dbc).Where("codigo_lote = ?", codigoLote).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *loteRepo) ExistsByCodigo(dbc dbctx.Context, codigoSector, codigoManzana, codigoLote string) (bool, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Lote{}).
		Where("codigo_sector = ? AND codigo_manzana = ? AND codigo_lote = ?",
			codigoSector, codigoManzana, codigoLote).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *loteRepo) GetBySector(dbc dbctx.Context, codigoSector string) ([]*domain.Lote, error) {
	var results []*domain.Lote
	if err := r.handle(dbc).
		Where("codigo_sector = ?", codigoSector).
		Order("codigo_manzana, codigo_lote").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *loteRepo) GetByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) ([]*domain.Lote, error) {
	var results []*domain.Lote
	if err := r.handle(dbc).
		Where("codigo_sector = ? AND codigo_manzana = ?", codigoSector, codigoManzana).
		Order("codigo_lote").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *loteRepo) List(dbc dbctx.Context, page, size int) ([]*domain.Lote, error) {
	var results []*domain.Lote
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

func (r *loteRepo) Update(dbc dbctx.Context, lote *domain.Lote) (*domain.Lote, error) {
	if err := r.handle(dbc).Save(lote).Error; err != nil {
		return nil, err
	}
	return lote, nil
}

func (r *loteRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	result := r.handle(dbc).Where("id = ?", id).Delete(&domain.Lote{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *loteRepo) CountBySector(dbc dbctx.Context, codigoSector string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Lote{}).
		Where("codigo_sector = ?", codigoSector).
		Count(&count).Error
	return count, err
}

func (r *loteRepo) CountByManzana(dbc dbctx.Context, codigoSector, codigoManzana string) (int64, error) {
	var count int64
	err := r.handle(dbc).Model(&domain.Lote{}).
		Where("codigo_sector = ? AND codigo_manzana = ?", codigoSector, codigoManzana).
		Count(&count).Error
	return count, err
}
