package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TipoTitularNatural  = "1"
	TipoTitularJuridica = "2"
)

// Titular is a natural or legal person holding a share of a ficha.
type Titular struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FichaID uuid.UUID `gorm:"column:ficha_id;type:uuid;not null;index" json:"ficha_id"`

	TipoTitular     string `gorm:"column:tipo_titular;size:20" json:"tipo_titular"`
	TipoDocumento   string `gorm:"column:tipo_documento;size:20" json:"tipo_documento"`
	NumeroDocumento string `gorm:"column:numero_documento;size:20;index" json:"numero_documento"`

	// Persona natural
	ApellidoPaterno string `gorm:"column:apellido_paterno;size:100" json:"apellido_paterno"`
	ApellidoMaterno string `gorm:"column:apellido_materno;size:100" json:"apellido_materno"`
	Nombres         string `gorm:"column:nombres;size:100" json:"nombres"`
	EstadoCivil     string `gorm:"column:estado_civil;size:20" json:"estado_civil"`

	// Persona jurídica
	RazonSocial         string `gorm:"column:razon_social;size:200" json:"razon_social"`
	TipoPersonaJuridica string `gorm:"column:tipo_persona_juridica;size:50" json:"tipo_persona_juridica"`

	// Domicilio fiscal del titular
	DomicilioDepartamento string `gorm:"column:domicilio_departamento;size:50" json:"domicilio_departamento"`
	DomicilioProvincia    string `gorm:"column:domicilio_provincia;size:50" json:"domicilio_provincia"`
	DomicilioDistrito     string `gorm:"column:domicilio_distrito;size:50" json:"domicilio_distrito"`
	DomicilioDireccion    string `gorm:"column:domicilio_direccion;size:255" json:"domicilio_direccion"`
	Telefono              string `gorm:"column:telefono;size:20" json:"telefono"`
	Email                 string `gorm:"column:email;size:100" json:"email"`

	// Propiedad
	PorcentajePropiedad *float64 `gorm:"column:porcentaje_propiedad;type:numeric(5,2)" json:"porcentaje_propiedad,omitempty"`
	CondicionTitular    string   `gorm:"column:condicion_titular;size:50" json:"condicion_titular"`

	// Forma de adquisición
	FormaAdquisicion string     `gorm:"column:forma_adquisicion;size:50" json:"forma_adquisicion"`
	FechaAdquisicion *time.Time `gorm:"column:fecha_adquisicion;type:date" json:"fecha_adquisicion,omitempty"`

	// Documento de propiedad
	TipoDocumentoLegal string     `gorm:"column:tipo_documento_legal;size:50" json:"tipo_documento_legal"`
	NumeroPartida      string     `gorm:"column:numero_partida;size:50" json:"numero_partida"`
	Fojas              string     `gorm:"column:fojas;size:20" json:"fojas"`
	Asiento            string     `gorm:"column:asiento;size:20" json:"asiento"`
	FechaInscripcion   *time.Time `gorm:"column:fecha_inscripcion;type:date" json:"fecha_inscripcion,omitempty"`
	OficinaRegistral   string     `gorm:"column:oficina_registral;size:100" json:"oficina_registral"`

	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
}

func (Titular) TableName() string { return "titular" }

// NombreCompleto returns the razón social for a legal person, otherwise
// "paterno materno, nombres" trimmed of missing parts.
func (t *Titular) NombreCompleto() string {
	if t.TipoTitular == TipoTitularJuridica {
		return t.RazonSocial
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s, %s", t.ApellidoPaterno, t.ApellidoMaterno, t.Nombres))
}
