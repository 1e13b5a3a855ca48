package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/platform/envutil"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.Str("POSTGRES_HOST", "localhost")
	postgresPort := envutil.Str("POSTGRES_PORT", "5432")
	postgresUser := envutil.Str("POSTGRES_USER", "postgres")
	postgresPassword := envutil.Str("POSTGRES_PASSWORD", "")
	postgresName := envutil.Str("POSTGRES_NAME", "catastro")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...", "host", postgresHost, "database", postgresName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.Lote{},
		&domain.FichaCatastral{},
		&domain.Titular{},
		&domain.Construccion{},
		&domain.Servicio{},
		&domain.Estimacion{},
		&domain.Foto{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	if err := s.applyConstraints(); err != nil {
		return err
	}
	return nil
}

// applyConstraints adds what AutoMigrate cannot express: cascade foreign
// keys for child rows and the conditional uniqueness of the full ficha code.
func (s *PostgresService) applyConstraints() error {
	s.log.Info("Configuring foreign key relationships for postgres tables...")

	fks := []struct {
		name, sql string
	}{
		{"fk_titular_ficha_id", `
			ALTER TABLE "titular"
			ADD CONSTRAINT "fk_titular_ficha_id"
			FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id")
			ON DELETE CASCADE`},
		{"fk_construccion_ficha_id", `
			ALTER TABLE "construccion"
			ADD CONSTRAINT "fk_construccion_ficha_id"
			FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id")
			ON DELETE CASCADE`},
		{"fk_servicio_ficha_id", `
			ALTER TABLE "servicio"
			ADD CONSTRAINT "fk_servicio_ficha_id"
			FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id")
			ON DELETE CASCADE`},
		{"fk_estimacion_lote_id", `
			ALTER TABLE "estimacion"
			ADD CONSTRAINT "fk_estimacion_lote_id"
			FOREIGN KEY ("lote_id") REFERENCES "lote"("id")
			ON DELETE CASCADE`},
		{"fk_foto_lote_id", `
			ALTER TABLE "foto"
			ADD CONSTRAINT "fk_foto_lote_id"
			FOREIGN KEY ("lote_id") REFERENCES "lote"("id")
			ON DELETE CASCADE`},
	}
	for _, fk := range fks {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, fk.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", fk.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(fk.sql).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}

	// The full-code natural key is only unique when both unidad and piso
	// are supplied; rows without them stay unconstrained.
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uq_ficha_codigo_completo"
		ON "ficha_catastral" ("codigo_lote", "codigo_unidad", "codigo_piso")
		WHERE "codigo_unidad" IS NOT NULL AND "codigo_piso" IS NOT NULL
	`).Error; err != nil {
		return fmt.Errorf("failed to add uq_ficha_codigo_completo: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
