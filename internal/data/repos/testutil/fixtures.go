package testutil

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
)

// RandomCodigoLote returns a unique 8-digit lot code so tests that commit
// outside a rolled-back transaction do not collide across runs.
func RandomCodigoLote() string {
	return fmt.Sprintf("%08d", rand.Intn(100000000))
}

func SeedLote(tb testing.TB, ctx context.Context, tx *gorm.DB, codigoLote string) *domain.Lote {
	tb.Helper()
	lat := -12.04637800
	lon := -77.04275400
	prec := 5.0
	l := &domain.Lote{
		ID:              uuid.New(),
		CodigoSector:    "01",
		CodigoManzana:   "002",
		CodigoLote:      codigoLote,
		Latitud:         &lat,
		Longitud:        &lon,
		PrecisionMetros: &prec,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lote: %v", err)
	}
	return l
}

func SeedFicha(tb testing.TB, ctx context.Context, tx *gorm.DB, codigoLote string) *domain.FichaCatastral {
	tb.Helper()
	area := 120.50
	f := &domain.FichaCatastral{
		ID:                  uuid.New(),
		CodigoLote:          codigoLote,
		CodigoSector:        "01",
		CodigoManzana:       "002",
		TipoPredio:          "Casa Habitación",
		ClasificacionPredio: "Urbano",
		UsoPredio:           "Residencial",
		AreaTerreno:         &area,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed ficha: %v", err)
	}
	return f
}

func SeedTitular(tb testing.TB, ctx context.Context, tx *gorm.DB, fichaID uuid.UUID, numeroDocumento string, porcentaje float64) *domain.Titular {
	tb.Helper()
	t := &domain.Titular{
		ID:                  uuid.New(),
		FichaID:             fichaID,
		TipoTitular:         domain.TipoTitularNatural,
		TipoDocumento:       "DNI",
		NumeroDocumento:     numeroDocumento,
		ApellidoPaterno:     "Quispe",
		ApellidoMaterno:     "Flores",
		Nombres:             "Juan",
		PorcentajePropiedad: &porcentaje,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed titular: %v", err)
	}
	return t
}

func SeedConstruccion(tb testing.TB, ctx context.Context, tx *gorm.DB, fichaID uuid.UUID, piso int) *domain.Construccion {
	tb.Helper()
	area := 80.0
	c := &domain.Construccion{
		ID:                  uuid.New(),
		FichaID:             fichaID,
		NumeroPiso:          &piso,
		NombrePiso:          fmt.Sprintf("Piso %d", piso),
		MaterialEstructural: "Concreto",
		EstadoConservacion:  "Bueno",
		EstadoConstruccion:  "Terminado",
		AreaConstruida:      &area,
		Muros:               "B",
		Techos:              "B",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed construccion: %v", err)
	}
	return c
}

func SeedServicio(tb testing.TB, ctx context.Context, tx *gorm.DB, fichaID uuid.UUID) *domain.Servicio {
	tb.Helper()
	s := &domain.Servicio{
		ID:        uuid.New(),
		FichaID:   fichaID,
		TieneLuz:  true,
		TipoLuz:   "Red Pública",
		TieneAgua: true,
		TipoAgua:  "Red Pública",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed servicio: %v", err)
	}
	return s
}

func PtrFloat(v float64) *float64 { return &v }

func PtrInt(v int) *int { return &v }

func PtrStr(v string) *string { return &v }
