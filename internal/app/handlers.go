package app

import (
	"github.com/municatastro/catastro-backend/internal/handlers"
)

type Handlers struct {
	Lote       *handlers.LoteHandler
	Ficha      *handlers.FichaHandler
	Estimacion *handlers.EstimacionHandler
	Foto       *handlers.FotoHandler
}

func wireHandlers(svcs Services) Handlers {
	return Handlers{
		Lote:       handlers.NewLoteHandler(svcs.Lote),
		Ficha:      handlers.NewFichaHandler(svcs.Ficha),
		Estimacion: handlers.NewEstimacionHandler(svcs.Estimacion),
		Foto:       handlers.NewFotoHandler(svcs.Foto),
	}
}
