package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/platform/logger"
	"github.com/municatastro/catastro-backend/internal/services"
)

type Services struct {
	Bucket     services.BucketService
	Lote       services.LoteService
	Ficha      services.FichaService
	Estimacion services.EstimacionService
	Foto       services.FotoService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	bucket, err := services.NewBucketService(log, cfg.GCSBucket)
	if err != nil {
		return Services{}, fmt.Errorf("init bucket service: %w", err)
	}
	return Services{
		Bucket:     bucket,
		Lote:       services.NewLoteService(db, log, repos.Lote, repos.Estimacion, repos.Foto, bucket),
		Ficha:      services.NewFichaService(db, log, repos.Ficha, repos.Titular, repos.Construccion, repos.Servicio),
		Estimacion: services.NewEstimacionService(log, repos.Estimacion, repos.Lote),
		Foto:       services.NewFotoService(log, repos.Foto, repos.Lote, bucket),
	}, nil
}
