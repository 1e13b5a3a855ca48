package fichas

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type ServicioRepo interface {
	Create(dbc dbctx.Context, servicio *domain.Servicio) (*domain.Servicio, error)
	GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) (*domain.Servicio, error)
	DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error
}

type servicioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServicioRepo(db *gorm.DB, baseLog *logger.Logger) ServicioRepo {
	repoLog := baseLog.With("repo", "ServicioRepo")
	return &servicioRepo{db: db, log: repoLog}
}

func (r *servicioRepo) handle(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *servicioRepo) Create(dbc dbctx.Context, servicio *domain.Servicio) (*domain.Servicio, error) {
	if err := r.handle(dbc).Create(servicio).Error; err != nil {
		return nil, err
	}
	return servicio, nil
}

func (r *servicioRepo) GetByFichaID(dbc dbctx.Context, fichaID uuid.UUID) (*domain.Servicio, error) {
	var result domain.Servicio
	err := r.handle(dbc).Where("ficha_id = ?", fichaID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *servicioRepo) DeleteByFichaID(dbc dbctx.Context, fichaID uuid.UUID) error {
	return r.handle(dbc).
		Where("ficha_id = ?", fichaID).
		Delete(&domain.Servicio{}).Error
}
