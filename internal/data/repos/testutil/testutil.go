package testutil

import (
	"errors"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := autoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Lote{},
		&domain.FichaCatastral{},
		&domain.Titular{},
		&domain.Construccion{},
		&domain.Servicio{},
		&domain.Estimacion{},
		&domain.Foto{},
	); err != nil {
		return err
	}
	return applyConstraints(db)
}

// Mirrors db.PostgresService: cascade FKs for the child tables and the
// partial unique index on the full ficha code.
func applyConstraints(db *gorm.DB) error {
	fks := []struct {
		name, sql string
	}{
		{"fk_titular_ficha_id", `ALTER TABLE "titular" ADD CONSTRAINT "fk_titular_ficha_id" FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id") ON DELETE CASCADE`},
		{"fk_construccion_ficha_id", `ALTER TABLE "construccion" ADD CONSTRAINT "fk_construccion_ficha_id" FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id") ON DELETE CASCADE`},
		{"fk_servicio_ficha_id", `ALTER TABLE "servicio" ADD CONSTRAINT "fk_servicio_ficha_id" FOREIGN KEY ("ficha_id") REFERENCES "ficha_catastral"("id") ON DELETE CASCADE`},
		{"fk_estimacion_lote_id", `ALTER TABLE "estimacion" ADD CONSTRAINT "fk_estimacion_lote_id" FOREIGN KEY ("lote_id") REFERENCES "lote"("id") ON DELETE CASCADE`},
		{"fk_foto_lote_id", `ALTER TABLE "foto" ADD CONSTRAINT "fk_foto_lote_id" FOREIGN KEY ("lote_id") REFERENCES "lote"("id") ON DELETE CASCADE`},
	}
	for _, fk := range fks {
		var exists bool
		if err := db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, fk.name,
		).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := db.Exec(fk.sql).Error; err != nil {
			return err
		}
	}
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uq_ficha_codigo_completo"
		ON "ficha_catastral" ("codigo_lote", "codigo_unidad", "codigo_piso")
		WHERE "codigo_unidad" IS NOT NULL AND "codigo_piso" IS NOT NULL
	`).Error
}
