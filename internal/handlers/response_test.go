package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/municatastro/catastro-backend/internal/platform/apierr"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %q)", err, w.Body.String())
	}
	return w, env
}

func TestRespondErrorMasksStorageDetails(t *testing.T) {
	driverErr := errors.New(`ERROR: duplicate key value violates unique constraint "uq_lote_codigo" (SQLSTATE 23505)`)
	w, env := respond(t, apierr.Storage(driverErr))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if env.Error.Code != apierr.CodeStorageFailure {
		t.Errorf("code = %q, want %q", env.Error.Code, apierr.CodeStorageFailure)
	}
	if strings.Contains(env.Error.Message, "SQLSTATE") || strings.Contains(env.Error.Message, "uq_lote_codigo") {
		t.Errorf("driver error leaked to the client: %q", env.Error.Message)
	}
}

func TestRespondErrorMasksBareErrors(t *testing.T) {
	w, env := respond(t, errors.New("pq: connection refused at 10.0.0.7:5432"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(env.Error.Message, "10.0.0.7") {
		t.Errorf("internal detail leaked to the client: %q", env.Error.Message)
	}
}

func TestRespondErrorKeepsClientFacingMessages(t *testing.T) {
	w, env := respond(t, apierr.Validation(errors.New("codigo_lote es requerido")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(env.Error.Message, "codigo_lote") {
		t.Errorf("validation message lost: %q", env.Error.Message)
	}
	if env.Error.Code != apierr.CodeValidationFailed {
		t.Errorf("code = %q, want %q", env.Error.Code, apierr.CodeValidationFailed)
	}
}
