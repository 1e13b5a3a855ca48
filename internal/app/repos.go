package app

import (
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/data/repos/estimaciones"
	"github.com/municatastro/catastro-backend/internal/data/repos/fichas"
	"github.com/municatastro/catastro-backend/internal/data/repos/fotos"
	"github.com/municatastro/catastro-backend/internal/data/repos/lotes"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type Repos struct {
	Lote         lotes.LoteRepo
	Ficha        fichas.FichaRepo
	Titular      fichas.TitularRepo
	Construccion fichas.ConstruccionRepo
	Servicio     fichas.ServicioRepo
	Estimacion   estimaciones.EstimacionRepo
	Foto         fotos.FotoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Lote:         lotes.NewLoteRepo(db, log),
		Ficha:        fichas.NewFichaRepo(db, log),
		Titular:      fichas.NewTitularRepo(db, log),
		Construccion: fichas.NewConstruccionRepo(db, log),
		Servicio:     fichas.NewServicioRepo(db, log),
		Estimacion:   estimaciones.NewEstimacionRepo(db, log),
		Foto:         fotos.NewFotoRepo(db, log),
	}
}
