package domain

import (
	"time"

	"github.com/google/uuid"
)

// Construccion describes one constructed floor/level of a ficha.
// The per-element fields (Muros..InstalacionesElectricas) carry the A–D
// quality grade used by the municipal valuation tables.
type Construccion struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FichaID uuid.UUID `gorm:"column:ficha_id;type:uuid;not null;index" json:"ficha_id"`

	NumeroPiso        *int       `gorm:"column:numero_piso;index" json:"numero_piso,omitempty"`
	NombrePiso        string     `gorm:"column:nombre_piso;size:50" json:"nombre_piso"`
	FechaConstruccion *time.Time `gorm:"column:fecha_construccion;type:date" json:"fecha_construccion,omitempty"`
	AnioConstruccion  *int       `gorm:"column:anio_construccion" json:"anio_construccion,omitempty"`

	MaterialEstructural string `gorm:"column:material_estructural;size:50" json:"material_estructural"`
	EstadoConservacion  string `gorm:"column:estado_conservacion;size:20" json:"estado_conservacion"`
	EstadoConstruccion  string `gorm:"column:estado_construccion;size:20" json:"estado_construccion"`

	AreaConstruida *float64 `gorm:"column:area_construida;type:numeric(10,2)" json:"area_construida,omitempty"`
	AreaTechada    *float64 `gorm:"column:area_techada;type:numeric(10,2)" json:"area_techada,omitempty"`
	AreaComun      *float64 `gorm:"column:area_comun;type:numeric(10,2)" json:"area_comun,omitempty"`

	Muros                   string `gorm:"column:muros;size:10" json:"muros"`
	Techos                  string `gorm:"column:techos;size:10" json:"techos"`
	Pisos                   string `gorm:"column:pisos;size:10" json:"pisos"`
	PuertasVentanas         string `gorm:"column:puertas_ventanas;size:10" json:"puertas_ventanas"`
	Revestimiento           string `gorm:"column:revestimiento;size:10" json:"revestimiento"`
	Banios                  string `gorm:"column:banios;size:10" json:"banios"`
	InstalacionesSanitarias string `gorm:"column:instalaciones_sanitarias;size:10" json:"instalaciones_sanitarias"`
	InstalacionesElectricas string `gorm:"column:instalaciones_electricas;size:10" json:"instalaciones_electricas"`

	CategoriaMuro          string `gorm:"column:categoria_muro;size:50" json:"categoria_muro"`
	CategoriaTecho         string `gorm:"column:categoria_techo;size:50" json:"categoria_techo"`
	CategoriaPiso          string `gorm:"column:categoria_piso;size:50" json:"categoria_piso"`
	CategoriaPuertaVentana string `gorm:"column:categoria_puerta_ventana;size:50" json:"categoria_puerta_ventana"`

	NumeroHabitaciones *int `gorm:"column:numero_habitaciones" json:"numero_habitaciones,omitempty"`
	NumeroBanios       *int `gorm:"column:numero_banios" json:"numero_banios,omitempty"`
	NumeroCocinas      *int `gorm:"column:numero_cocinas" json:"numero_cocinas,omitempty"`

	TieneGarage  bool `gorm:"column:tiene_garage;default:false" json:"tiene_garage"`
	TieneTerraza bool `gorm:"column:tiene_terraza;default:false" json:"tiene_terraza"`
	TieneBalcon  bool `gorm:"column:tiene_balcon;default:false" json:"tiene_balcon"`

	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
}

func (Construccion) TableName() string { return "construccion" }
