package fichas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type ConstruccionRepo interface {
	Create(dbc dbctx.Context, construcciones []*domain.Construccion) ([]*domain.Construccion, error)
	GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) ([]*domain.Construccion, error)
	DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error
}

type construccionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConstruccionRepo(db *gorm.DB, baseLog *logger.Logger) ConstruccionRepo {
	repoLog := baseLog.With("repo", "ConstruccionRepo")
	return &construccionRepo{db: db, log: repoLog}
}

func (r *construccionRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *construccionRepo) Create(dbc dbctx.Context, construcciones []*domain.Construccion) ([]*domain.Construccion, error) {
	if len(construcciones) == 0 {
		return []*domain.Construccion{}, nil
	}
	if err := r.handle(dbc).Create(&construcciones).Error; err != nil {
		return nil, err
	}
	return construcciones, nil
}

func (r *construccionRepo) GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) ([]*domain.Construccion, error) {
	var results []*domain.Construccion
	if err := r.handle(dbc).
		Where("ficha_id = ?", fichaID).
		Order("numero_piso").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *construccionRepo) DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error {
	return r.handle(dbc).
		Where("ficha_id = ?", fichaID).
		Delete(&domain.Construccion{}).Error
}
