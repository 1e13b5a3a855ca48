package domain

import (
	"time"

	"github.com/google/uuid"
)

// Servicio is the utility/access profile of a ficha. One row per ficha,
// enforced by the unique index on ficha_id.
type Servicio struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FichaID uuid.UUID `gorm:"column:ficha_id;type:uuid;not null;uniqueIndex" json:"ficha_id"`

	TieneLuz     bool   `gorm:"column:tiene_luz;default:false" json:"tiene_luz"`
	TipoLuz      string `gorm:"column:tipo_luz;size:50" json:"tipo_luz"`
	TieneAgua    bool   `gorm:"column:tiene_agua;default:false" json:"tiene_agua"`
	TipoAgua     string `gorm:"column:tipo_agua;size:50" json:"tipo_agua"`
	TieneDesague bool   `gorm:"column:tiene_desague;default:false" json:"tiene_desague"`
	TipoDesague  string `gorm:"column:tipo_desague;size:50" json:"tipo_desague"`

	TieneGas      bool   `gorm:"column:tiene_gas;default:false" json:"tiene_gas"`
	TipoGas       string `gorm:"column:tipo_gas;size:50" json:"tipo_gas"`
	TieneTelefono bool   `gorm:"column:tiene_telefono;default:false" json:"tiene_telefono"`
	TipoTelefono  string `gorm:"column:tipo_telefono;size:50" json:"tipo_telefono"`
	TieneInternet bool   `gorm:"column:tiene_internet;default:false" json:"tiene_internet"`
	TipoInternet  string `gorm:"column:tipo_internet;size:50" json:"tipo_internet"`
	TieneTvCable  bool   `gorm:"column:tiene_tv_cable;default:false" json:"tiene_tv_cable"`
	OperadorTv    string `gorm:"column:operador_tv;size:50" json:"operador_tv"`

	ViaPavimentada bool `gorm:"column:via_pavimentada;default:false" json:"via_pavimentada"`
	ViaAfirmada    bool `gorm:"column:via_afirmada;default:false" json:"via_afirmada"`
	ViaTrocha      bool `gorm:"column:via_trocha;default:false" json:"via_trocha"`

	TieneTransportePublico    bool `gorm:"column:tiene_transporte_publico;default:false" json:"tiene_transporte_publico"`
	DistanciaTransporteMetros *int `gorm:"column:distancia_transporte_metros" json:"distancia_transporte_metros,omitempty"`

	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
}

func (Servicio) TableName() string { return "servicio" }

// ServiciosBasicos counts luz, agua and desague.
func (s *Servicio) ServiciosBasicos() int {
	count := 0
	if s.TieneLuz {
		count++
	}
	if s.TieneAgua {
		count++
	}
	if s.TieneDesague {
		count++
	}
	return count
}
