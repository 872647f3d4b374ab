package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("gone")))
	assert.Equal(t, KindConflict, KindOf(Conflictf("busy")))
	assert.Equal(t, KindValidation, KindOf(Validationf("bad")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NotFoundf("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped), "KindOf sees through wrapping")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal("failed to persist", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{NotFoundf("gone"), http.StatusNotFound},
		{Validationf("bad"), http.StatusBadRequest},
		{Conflictf("busy"), http.StatusConflict},
		{Internalf("broken"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		RespondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code)
	}
}

func TestRespondError_CarriesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, NotFoundf("no such troop").WithDetails(JSONB{"valid_names": []string{"Barbarian"}}))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "valid_names")
	assert.Contains(t, w.Body.String(), "Barbarian")
}
