package domain

import (
	"time"

	"github.com/google/uuid"
)

// FichaCatastral is the aggregate root for one assessable unit inside a
// lot. Titulares, construcciones and the servicio row exist only through
// their ficha; every mutation of the set happens in the root's transaction.
//
// CodigoUnidad and CodigoPiso stay nullable: the full-code uniqueness rule
// only applies when both are present, enforced by a partial unique index
// (see db.PostgresService).
type FichaCatastral struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	// Códigos catastrales
	CodigoLote        string  `gorm:"column:codigo_lote;size:8;not null;index" json:"codigo_lote"`
	CodigoSector      string  `gorm:"column:codigo_sector;size:2;index" json:"codigo_sector"`
	CodigoManzana     string  `gorm:"column:codigo_manzana;size:3" json:"codigo_manzana"`
	CodigoUnidad      *string `gorm:"column:codigo_unidad;size:3" json:"codigo_unidad,omitempty"`
	CodigoPiso        *string `gorm:"column:codigo_piso;size:2" json:"codigo_piso,omitempty"`
	CodigoEdificacion string  `gorm:"column:codigo_edificacion;size:2" json:"codigo_edificacion"`
	CodigoEntrada     string  `gorm:"column:codigo_entrada;size:2" json:"codigo_entrada"`
	ContadorFichas    *int    `gorm:"column:contador_fichas" json:"contador_fichas,omitempty"`

	// Clasificación del predio
	TipoPredio          string `gorm:"column:tipo_predio;size:50;index" json:"tipo_predio"`
	ClasificacionPredio string `gorm:"column:clasificacion_predio;size:50" json:"clasificacion_predio"`
	UsoPredio           string `gorm:"column:uso_predio;size:50" json:"uso_predio"`
	PredioCatastradoEn  string `gorm:"column:predio_catastrado_en;size:20" json:"predio_catastrado_en"`

	// Domicilio fiscal
	Departamento        string `gorm:"column:departamento;size:50" json:"departamento"`
	Provincia           string `gorm:"column:provincia;size:50" json:"provincia"`
	Distrito            string `gorm:"column:distrito;size:50" json:"distrito"`
	ZonaSectorEtapa     string `gorm:"column:zona_sector_etapa;size:100" json:"zona_sector_etapa"`
	Manzana             string `gorm:"column:manzana;size:20" json:"manzana"`
	Lote                string `gorm:"column:lote;size:20" json:"lote"`
	CalleAvenida        string `gorm:"column:calle_avenida;size:150" json:"calle_avenida"`
	NumeroMunicipal     string `gorm:"column:numero_municipal;size:20" json:"numero_municipal"`
	TipoInterior        string `gorm:"column:tipo_interior;size:20" json:"tipo_interior"`
	NumeroInterior      string `gorm:"column:numero_interior;size:20" json:"numero_interior"`
	TipoPuerta          string `gorm:"column:tipo_puerta;size:20" json:"tipo_puerta"`
	NumeroPuerta        string `gorm:"column:numero_puerta;size:20" json:"numero_puerta"`
	Kilometro           string `gorm:"column:kilometro;size:20" json:"kilometro"`
	ReferenciaUbicacion string `gorm:"column:referencia_ubicacion;size:255" json:"referencia_ubicacion"`

	// Medidas perimétricas en metros lineales
	FrenteML    *float64 `gorm:"column:frente_ml;type:numeric(10,2)" json:"frente_ml,omitempty"`
	DerechaML   *float64 `gorm:"column:derecha_ml;type:numeric(10,2)" json:"derecha_ml,omitempty"`
	IzquierdaML *float64 `gorm:"column:izquierda_ml;type:numeric(10,2)" json:"izquierda_ml,omitempty"`
	FondoML     *float64 `gorm:"column:fondo_ml;type:numeric(10,2)" json:"fondo_ml,omitempty"`

	// Áreas
	AreaTerreno      *float64 `gorm:"column:area_terreno;type:numeric(10,2)" json:"area_terreno,omitempty"`
	AreaConstruccion *float64 `gorm:"column:area_construccion;type:numeric(10,2)" json:"area_construccion,omitempty"`
	AreaVerificada   *float64 `gorm:"column:area_verificada;type:numeric(10,2)" json:"area_verificada,omitempty"`

	// Linderos y colindancias
	LinderoFrente    string `gorm:"column:lindero_frente;size:255" json:"lindero_frente"`
	LinderoDerecha   string `gorm:"column:lindero_derecha;size:255" json:"lindero_derecha"`
	LinderoIzquierda string `gorm:"column:lindero_izquierda;size:255" json:"lindero_izquierda"`
	LinderoFondo     string `gorm:"column:lindero_fondo;size:255" json:"lindero_fondo"`

	CondicionNumeracion string `gorm:"column:condicion_numeracion;size:50" json:"condicion_numeracion"`
	CondicionPredio     string `gorm:"column:condicion_predio;size:50" json:"condicion_predio"`

	FechaLevantamiento        *time.Time `gorm:"column:fecha_levantamiento;type:date" json:"fecha_levantamiento,omitempty"`
	FechaInscripcionRegistral *time.Time `gorm:"column:fecha_inscripcion_registral;type:date" json:"fecha_inscripcion_registral,omitempty"`

	Observaciones string `gorm:"column:observaciones;type:text" json:"observaciones"`

	FechaCreacion     time.Time `gorm:"column:fecha_creacion;not null;default:now()" json:"fecha_creacion"`
	FechaModificacion time.Time `gorm:"column:fecha_modificacion;not null;default:now()" json:"fecha_modificacion"`

	// Hydrated by the service for single-aggregate reads; never written
	// through these associations directly.
	Titulares      []*Titular      `gorm:"-" json:"titulares"`
	Construcciones []*Construccion `gorm:"-" json:"construcciones"`
	Servicio       *Servicio       `gorm:"-" json:"servicios,omitempty"`
}

func (FichaCatastral) TableName() string { return "ficha_catastral" }

// AreaTotalConstruccion sums the built area over the hydrated floors.
func (f *FichaCatastral) AreaTotalConstruccion() float64 {
	var total float64
	for _, c := range f.Construcciones {
		if c != nil && c.AreaConstruida != nil {
			total += *c.AreaConstruida
		}
	}
	return total
}
