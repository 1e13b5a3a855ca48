package fichas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type TitularRepo interface {
	Create(dbc dbctx.Context, titulares []*domain.Titular) ([]*domain.Titular, error)
	GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) ([]*domain.Titular, error)
	GetByNumeroDocumento(dbc dbctx.Context, numeroDocumento string) ([]*domain.Titular, error)
	DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error
}

type titularRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTitularRepo(db *gorm.DB, baseLog *logger.Logger) TitularRepo {
	repoLog := baseLog.With("repo", "TitularRepo")
	return &titularRepo{db: db, log: repoLog}
}

func (r *titularRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *titularRepo) Create(dbc dbctx.Context, titulares []*domain.Titular) ([]*domain.Titular, error) {
	if len(titulares) == 0 {
		return []*domain.Titular{}, nil
	}
	if err := r.handle(dbc).Create(&titulares).Error; err != nil {
		return nil, err
	}
	return titulares, nil
}

func (r *titularRepo) GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) ([]*domain.Titular, error) {
	var results []*domain.Titular
	if err := r.handle(dbc).
		Where("ficha_id = ?", fichaID).
		Order("fecha_creacion").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *titularRepo) GetByNumeroDocumento(dbc dbctx.Context, numeroDocumento string) ([]*domain.Titular, error) {
	var results []*domain.Titular
	if err := r.handle(dbc).
		Where("numero_documento = ?", numeroDocumento).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *titularRepo) DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error {
	return r.handle(dbc).
		Where("ficha_id = ?", fichaID).
		Delete(&domain.Titular{}).Error
}
