package domain

import "testing"

func TestTitularNombreCompleto(t *testing.T) {
	natural := Titular{
		TipoTitular:     TipoTitularNatural,
		ApellidoPaterno: "Quispe",
		ApellidoMaterno: "Flores",
		Nombres:         "Juan Carlos",
	}
	if got := natural.NombreCompleto(); got != "Quispe Flores, Juan Carlos" {
		t.Errorf("NombreCompleto() = %q", got)
	}

	juridica := Titular{
		TipoTitular: TipoTitularJuridica,
		RazonSocial: "Inmobiliaria Los Andes S.A.C.",
		Nombres:     "ignorado",
	}
	if got := juridica.NombreCompleto(); got != "Inmobiliaria Los Andes S.A.C." {
		t.Errorf("NombreCompleto() = %q", got)
	}
}

func TestEstimacionTotalUnidades(t *testing.T) {
	e := Estimacion{
		NumViviendas:        3,
		NumComercios:        2,
		NumIndustrias:       1,
		NumEducacion:        0,
		NumSalud:            1,
		NumReligion:         0,
		NumEstacionamientos: 4,
	}
	if got := e.TotalUnidades(); got != 11 {
		t.Errorf("TotalUnidades() = %d, want 11", got)
	}

	var vacia Estimacion
	if got := vacia.TotalUnidades(); got != 0 {
		t.Errorf("TotalUnidades() on zero value = %d, want 0", got)
	}
}

func TestFichaAreaTotalConstruccion(t *testing.T) {
	area1 := 80.5
	area2 := 42.25
	f := FichaCatastral{
		Construcciones: []*Construccion{
			{AreaConstruida: &area1},
			{AreaConstruida: &area2},
			{AreaConstruida: nil},
		},
	}
	if got := f.AreaTotalConstruccion(); got != 122.75 {
		t.Errorf("AreaTotalConstruccion() = %v, want 122.75", got)
	}
}

func TestServicioServiciosBasicos(t *testing.T) {
	s := Servicio{TieneLuz: true, TieneAgua: true, TieneDesague: false, TieneGas: true}
	if got := s.ServiciosBasicos(); got != 2 {
		t.Errorf("ServiciosBasicos() = %d, want 2", got)
	}
}
