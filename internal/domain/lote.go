package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lote is a physical parcel identified by sector/manzana/lote codes.
// The code triple is the natural key; it never changes after creation.
type Lote struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	CodigoSector  string `gorm:"column:codigo_sector;size:2;not null;index;uniqueIndex:uq_lote_codigo" json:"codigo_sector"`
	CodigoManzana string `gorm:"column:codigo_manzana;size:3;not null;index;uniqueIndex:uq_lote_codigo" json:"codigo_manzana"`
	CodigoLote    string `gorm:"column:codigo_lote;size:8;not null;index;uniqueIndex:uq_lote_codigo" json:"codigo_lote"`

	Latitud         *float64 `gorm:"column:latitud;type:numeric(10,8)" json:"latitud,omitempty"`
	Longitud        *float64 `gorm:"column:longitud;type:numeric(11,8)" json:"longitud,omitempty"`
	PrecisionMetros *float64 `gorm:"column:precision_metros;type:numeric(5,2)" json:"precision_metros,omitempty"`

	FechaCreacion     time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
	FechaModificacion time.Time `gorm:"column:fecha_modificacion;not null;default:now()" json:"fecha_modificacion"`
}

func (Lote) TableName() string { return "lote" }
