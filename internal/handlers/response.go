package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/municatastro/catastro-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps an error to its HTTP envelope. Errors carrying an
// apierr.Error keep their status and code; anything else is a 500. Internal
// failures never surface the storage engine's message: the real error goes
// to the gin error log, the envelope carries a generic text.
func RespondError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		msg := ae.Error()
		if ae.Status >= http.StatusInternalServerError {
			_ = c.Error(err)
			msg = mensajeInterno(ae.Code)
		}
		c.JSON(ae.Status, ErrorEnvelope{
			Error: APIError{Message: msg, Code: ae.Code},
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: mensajeInterno(apierr.CodeStorageFailure), Code: apierr.CodeStorageFailure},
	})
}

func mensajeInterno(code string) string {
	if code == apierr.CodeExternalStorageFailure {
		return "fallo en el almacenamiento externo"
	}
	return "error interno de almacenamiento"
}

func RespondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{Message: message, Code: apierr.CodeValidationFailed},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
