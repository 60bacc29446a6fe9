package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHelpersIncrement(t *testing.T) {
	before := testutil.ToFloat64(statementsRenderedTotal.WithLabelValues("csv"))
	RecordStatementRendered("csv")
	assert.Equal(t, before+1, testutil.ToFloat64(statementsRenderedTotal.WithLabelValues("csv")))

	before = testutil.ToFloat64(auditEntriesTotal.WithLabelValues("security", "false"))
	RecordAuditEntry("security", false)
	assert.Equal(t, before+1, testutil.ToFloat64(auditEntriesTotal.WithLabelValues("security", "false")))
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/v1/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/v1/things/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/things/42", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/v1/things/:id", "204")))
}
