package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/data/repos/fotos"
	"github.com/municatastro/catastro-backend/internal/data/repos/lotes"
	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/platform/apierr"
	"github.com/municatastro/catastro-backend/internal/platform/logger"
)

// FotoService registers photos against a lot. When the payload carries file
// content (no external URL), the bytes land in the bucket under
// "lote_<codigo>/<nombre>" and the stored public URL points there. A payload
// with an http(s) URL is recorded as-is, external hosting stays external.
type FotoService interface {
	Create(dbc dbctx.Context, foto *domain.Foto, contenido io.Reader) (*domain.Foto, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Foto, error)
	GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Foto, error)
	GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.Foto, error)
	GetByTipoFoto(dbc dbctx.Context, tipoFoto string) ([]*domain.Foto, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type fotoService struct {
	log      *logger.Logger
	fotoRepo fotos.FotoRepo
	loteRepo lotes.LoteRepo
	bucket   BucketService
}

func NewFotoService(
	baseLog *logger.Logger,
	fotoRepo fotos.FotoRepo,
	loteRepo lotes.LoteRepo,
	bucket BucketService,
) FotoService {
	return &fotoService{
		log:      baseLog.With("service", "FotoService"),
		fotoRepo: fotoRepo,
		loteRepo: loteRepo,
		bucket:   bucket,
	}
}

func (s *fotoService) Create(dbc dbctx.Context, foto *domain.Foto, contenido io.Reader) (*domain.Foto, error) {
	if foto == nil {
		return nil, apierr.Validation(fmt.Errorf("foto requerida"))
	}
	if strings.TrimSpace(foto.CodigoLote) == "" {
		return nil, apierr.Validation(fmt.Errorf("codigo_lote es requerido"))
	}
	if strings.TrimSpace(foto.Nombre) == "" {
		return nil, apierr.Validation(fmt.Errorf("nombre es requerido"))
	}

	lote, err := s.loteRepo.GetByCodigo(dbc, foto.CodigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if lote == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeLoteNotFound,
			fmt.Errorf("lote %s no existe", foto.CodigoLote))
	}

	if !esURLExterna(foto.URL) {
		if contenido == nil {
			raw := strings.TrimSpace(foto.URL)
			if raw == "" {
				return nil, apierr.Validation(fmt.Errorf("se requiere archivo o una url http(s)"))
			}
			// A non-http(s) url in a JSON payload carries the image itself,
			// base64-encoded.
			decoded, err := base64.StdEncoding.DecodeString(raw)
			if err != nil {
				return nil, apierr.Validation(fmt.Errorf("url no es http(s) ni contenido base64 válido"))
			}
			contenido = bytes.NewReader(decoded)
			if foto.TamanioBytes == nil {
				n := int64(len(decoded))
				foto.TamanioBytes = &n
			}
		}
		key := fmt.Sprintf("lote_%s/%s", foto.CodigoLote, foto.Nombre)
		if err := s.bucket.UploadFile(dbc, key, contenido); err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeExternalStorageFailure,
				fmt.Errorf("fallo al subir %q: %w", key, err))
		}
		foto.URL = s.bucket.GetPublicURL(key)
		foto.Servicio = domain.ServicioAlmacenamientoGCS
	}

	foto.ID = uuid.New()
	foto.LoteID = lote.ID
	foto.FechaCreacion = time.Now()

	if _, err := s.fotoRepo.Create(dbc, foto); err != nil {
		// The row failed after the object landed; drop the object so a
		// retry does not collide with a half-registered upload.
		if key := s.bucket.KeyFromURL(foto.URL); key != "" {
			if delErr := s.bucket.DeleteFile(dbc, key); delErr != nil {
				s.log.Warn("Failed rolling back photo object", "key", key, "error", delErr)
			}
		}
		return nil, apierr.Storage(err)
	}

	s.log.Info("Foto created", "foto_id", foto.ID,
		"codigo_lote", foto.CodigoLote, "servicio", foto.Servicio)
	return foto, nil
}

func (s *fotoService) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Foto, error) {
	foto, err := s.fotoRepo.GetByID(dbc, id)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if foto == nil {
		return nil, apierr.NotFound(fmt.Errorf("foto %s no existe", id))
	}
	return foto, nil
}

func (s *fotoService) GetByLoteID(dbc dbctx.Context, loteID uuid.UUID) ([]*domain.Foto, error) {
	results, err := s.fotoRepo.GetByLoteID(dbc, loteID)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *fotoService) GetByCodigoLote(dbc dbctx.Context, codigoLote string) ([]*domain.Foto, error) {
	results, err := s.fotoRepo.GetByCodigoLote(dbc, codigoLote)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *fotoService) GetByTipoFoto(dbc dbctx.Context, tipoFoto string) ([]*domain.Foto, error) {
	results, err := s.fotoRepo.GetByTipoFoto(dbc, tipoFoto)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	return results, nil
}

func (s *fotoService) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	foto, err := s.fotoRepo.GetByID(dbc, id)
	if err != nil {
		return false, apierr.Storage(err)
	}
	if foto == nil {
		return false, nil
	}

	deleted, err := s.fotoRepo.Delete(dbc, id)
	if err != nil {
		return false, apierr.Storage(err)
	}
	if deleted {
		if key := s.bucket.KeyFromURL(foto.URL); key != "" {
			if err := s.bucket.DeleteFile(dbc, key); err != nil {
				s.log.Warn("Failed deleting photo object", "key", key, "error", err)
			}
		}
		s.log.Info("Foto deleted", "foto_id", id)
	}
	return deleted, nil
}

func esURLExterna(raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
