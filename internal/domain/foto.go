package domain

import (
	"time"

	"github.com/google/uuid"
)

const ServicioAlmacenamientoGCS = "GCS"

// Foto is the metadata row for an image or document tied to a lot. URL
// points either at the managed bucket or at an externally hosted object.
type Foto struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LoteID uuid.UUID `gorm:"column:lote_id;type:uuid;not null;index" json:"lote_id"`

	CodigoLote string `gorm:"column:codigo_lote;size:8;not null;index" json:"codigo_lote"`

	Servicio     string `gorm:"column:servicio;size:20" json:"servicio"`
	Nombre       string `gorm:"column:nombre;size:100;not null" json:"nombre"`
	URL          string `gorm:"column:url;not null;index" json:"url"`
	TipoTerreno  string `gorm:"column:tipo_terreno;size:20" json:"tipo_terreno"`
	TipoFoto     string `gorm:"column:tipo_foto;size:50" json:"tipo_foto"`
	ContentType  string `gorm:"column:content_type;size:50" json:"content_type"`
	TamanioBytes *int64 `gorm:"column:tamanio_bytes" json:"tamanio_bytes,omitempty"`

	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
}

func (Foto) TableName() string { return "foto" }
