package fotos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type FotoRepo interface {
	Create(dbc dbctx.Context, foto *domain.Foto) (*domain.Foto, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Foto, error)
	GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Foto, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.Foto, error)
	GetByTipoFoto(dbc dbctx.Context, tipoFoto string) ([]*domain.Foto, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	DeleteByLoteID(dbc dbctx.Context, loteID uuid.UUID) error
}

type fotoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFotoRepo(db *gorm.DB, baseLog *logger.Logger) FotoRepo {
	repoLog := baseLog.With("repo", "FotoRepo")
	return &fotoRepo{db: db, log: repoLog}
}

func (r *fotoRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *fotoRepo) Create(dbc dbctx.Context, foto *domain.Foto) (*domain.Foto, error) {
	if err := r.handle(dbc).Create(foto).Error; err != nil {
		return nil, err
	}
	return foto, nil
}

func (r *fotoRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Foto, error) {
	var result domain.Foto
	err := r.handle(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *fotoRepo) GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Foto, error) {
	var results []*domain.Foto
	if err := r.handle(dbc).
		Where("lote_id = ?", loteID).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fotoRepo) GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.Foto, error) {
	var results []*domain.Foto
	if err := r.handle(dbc).
		Where("codigo_lote = ?", codigoLote).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fotoRepo) GetByTipoFoto(dbc dbctx.Context, tipoFoto string) ([]*domain.Foto, error) {
	var results []*domain.Foto
	if err := r.handle(dbc).
		Where("tipo_foto = ?", tipoFoto).
		Order("fecha_creacion DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *fotoRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	result := r.handle(dbc).Where("id = ?", id).Delete(&domain.Foto{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *fotoRepo) DeleteByLoteID(dbc dbctx.Context, loteID uuid.UUID) error {
	return r.handle(dbc).
		Where("lote_id = ?", loteID).
		Delete(&domain.Foto{}).Error
}
