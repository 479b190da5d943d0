package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationItem struct {
	TemplateID string `json:"templateId" binding:"required,uuid"`
}

type validationInput struct {
	Email string           `json:"email" binding:"required,email"`
	Items []validationItem `json:"items" binding:"required,min=1,dive"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var in validationInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(router, req)
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("field details with json names", func(t *testing.T) {
		w := post(router, `{"email":"nope","items":[{"templateId":"x"}]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decodeError(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		details, ok := body.Error.Details.([]any)
		require.True(t, ok)
		require.Len(t, details, 2)

		fields := map[string]string{}
		for _, d := range details {
			m := d.(map[string]any)
			fields[m["field"].(string)] = m["message"].(string)
		}
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Invalid UUID format", fields["items[0].templateId"])
	})

	t.Run("empty items", func(t *testing.T) {
		w := post(router, `{"email":"a@b.co","items":[]}`)
		body := decodeError(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	})

	t.Run("malformed json has no details", func(t *testing.T) {
		w := post(router, `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Nil(t, body.Error.Details)
	})

	t.Run("valid", func(t *testing.T) {
		w := post(router, `{"email":"a@b.co","items":[{"templateId":"8a6e0804-2bd0-4672-b79d-d97027f9071a"}]}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
