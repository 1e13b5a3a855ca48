package domain

import (
	"time"

	"github.com/google/uuid"
)

// Estimacion is a per-lot field survey summary: unit counts by use and
// service meter counts. NumUnidadesCatastrales is derived — services always
// recompute it from the seven unit counts and ignore client-supplied totals.
type Estimacion struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LoteID uuid.UUID `gorm:"column:lote_id;type:uuid;not null;index" json:"lote_id"`

	CodigoLote string `gorm:"column:codigo_lote;size:8;not null;index" json:"codigo_lote"`

	NumUnidadesCatastrales int    `gorm:"column:num_unidades_catastrales;default:0" json:"num_unidades_catastrales"`
	TipoTerreno            string `gorm:"column:tipo_terreno;size:20" json:"tipo_terreno"`
	NumPisos               int    `gorm:"column:num_pisos;default:0" json:"num_pisos"`

	NumViviendas        int `gorm:"column:num_viviendas;default:0" json:"num_viviendas"`
	NumComercios        int `gorm:"column:num_comercios;default:0" json:"num_comercios"`
	NumIndustrias       int `gorm:"column:num_industrias;default:0" json:"num_industrias"`
	NumEducacion        int `gorm:"column:num_educacion;default:0" json:"num_educacion"`
	NumSalud            int `gorm:"column:num_salud;default:0" json:"num_salud"`
	NumReligion         int `gorm:"column:num_religion;default:0" json:"num_religion"`
	NumEstacionamientos int `gorm:"column:num_estacionamientos;default:0" json:"num_estacionamientos"`

	NumMedidoresLuz  int `gorm:"column:num_medidores_luz;default:0" json:"num_medidores_luz"`
	NumMedidoresAgua int `gorm:"column:num_medidores_agua;default:0" json:"num_medidores_agua"`
	NumTimbres       int `gorm:"column:num_timbres;default:0" json:"num_timbres"`
	NumSinServicio   int `gorm:"column:num_sin_servicio;default:0" json:"num_sin_servicio"`

	Observacion string `gorm:"column:observacion;size:250" json:"observacion"`

	FechaCreacion     time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
	FechaModificacion time.Time `gorm:"column:fecha_modificacion;not null;default:now()" json:"fecha_modificacion"`
}

func (Estimacion) TableName() string { return "estimacion" }

// TotalUnidades sums the seven unit-type counts.
func (e *Estimacion) TotalUnidades() int {
	return e.NumViviendas + e.NumComercios + e.NumIndustrias +
		e.NumEducacion + e.NumSalud + e.NumReligion + e.NumEstacionamientos
}
