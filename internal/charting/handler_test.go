package charting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/datainsight-lab/datainsight/internal/api/v1"
	httperr "github.com/datainsight-lab/datainsight/internal/core/errors"
)

func newTestRouter(t *testing.T, disabled ...string) (*gin.Engine, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := newTestEnv(t, nil, disabled...)
	r := gin.New()
	env.svc.RegisterRoutes(r)
	return r, env
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandleRender_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		disabled   []string
		datasetID  string
		body       string
		wantStatus int
		wantType   string
	}{
		{
			name:       "success",
			body:       `{"kind":"bar","x_field":"regiao","y_field":"vendas"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid spec is 400",
			body:       `{"kind":"bar","x_field":"nonexistent","y_field":"vendas"}`,
			wantStatus: http.StatusBadRequest,
			wantType:   httperr.HttpInvalidSpecification,
		},
		{
			name:       "all backends failed is 422",
			disabled:   []string{"echarts", "vegalite", "png", "html", "ascii"},
			body:       `{"kind":"bar","x_field":"regiao","y_field":"vendas"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   httperr.HttpAllBackendsFailedError,
		},
		{
			name:       "unknown dataset is 404",
			datasetID:  "missing",
			body:       `{"kind":"bar","x_field":"regiao","y_field":"vendas"}`,
			wantStatus: http.StatusNotFound,
			wantType:   httperr.HttpDatasetNotFoundError,
		},
		{
			name:       "malformed body is 400",
			body:       `{"kind":`,
			wantStatus: http.StatusBadRequest,
			wantType:   httperr.HttpInvalidRequestError,
		},
		{
			name:       "unknown backend is 400",
			body:       `{"kind":"bar","x_field":"regiao","y_field":"vendas","backends":["svg"]}`,
			wantStatus: http.StatusBadRequest,
			wantType:   httperr.HttpInvalidRequestError,
		},
		{
			name:       "repeated backend is 400",
			body:       `{"kind":"bar","x_field":"regiao","y_field":"vendas","backends":["ascii","ascii"]}`,
			wantStatus: http.StatusBadRequest,
			wantType:   httperr.HttpInvalidRequestError,
		},
		{
			name:       "bins above limit is 400",
			body:       `{"kind":"histogram","x_field":"vendas","extra":{"bins":1099511627776}}`,
			wantStatus: http.StatusBadRequest,
			wantType:   httperr.HttpInvalidSpecification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, env := newTestRouter(t, tt.disabled...)
			id := tt.datasetID
			if id == "" {
				id = env.datasetID
			}

			resp := do(r, http.MethodPost, "/v1/datasets/"+id+"/charts", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantType == "" {
				return
			}
			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantType, errResp.ErrorType)
		})
	}
}

func TestHandleRender_FallbackBody(t *testing.T) {
	r, env := newTestRouter(t, "echarts", "vegalite", "png")

	resp := do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/charts?include_view=true",
		`{"kind":"bar","x_field":"regiao","y_field":"vendas"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var got v1.ChartResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "html", got.Backend)
	assert.Contains(t, got.Body, "height:50%")
	assert.Len(t, got.Failures, 3)
	require.NotNil(t, got.View)
	assert.Equal(t, []string{"Norte", "Sul"}, got.View.Labels())
}

func TestHandleRender_AllFailedCarriesOrderedFailures(t *testing.T) {
	r, env := newTestRouter(t, "echarts", "vegalite", "png", "html", "ascii")

	resp := do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/charts",
		`{"kind":"pie","x_field":"regiao"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var body struct {
		Details struct {
			Failures []struct {
				Backend string `json:"backend"`
				Kind    string `json:"kind"`
			} `json:"failures"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Details.Failures, 5)
	for i, name := range []string{"echarts", "vegalite", "png", "html", "ascii"} {
		assert.Equal(t, name, body.Details.Failures[i].Backend)
		assert.Equal(t, "unavailable", body.Details.Failures[i].Kind)
	}
}

func TestHandleValidate(t *testing.T) {
	r, env := newTestRouter(t)

	resp := do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/validate", `{"kind":"histogram","x_field":"vendas"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/validate", `{"kind":"histogram","x_field":"regiao"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, httperr.HttpInvalidSpecification, errResp.ErrorType)
	assert.Equal(t, "x_field", errResp.Details.(map[string]interface{})["field"])
}

func TestHandleAggregate(t *testing.T) {
	r, env := newTestRouter(t)

	resp := do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/aggregate", `{"group_by":"regiao","value_column":"vendas","op":"mean"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var view struct {
		Rows []struct {
			Group string  `json:"group"`
			Value float64 `json:"value"`
		} `json:"rows"`
		Skipped int `json:"skipped_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Norte", view.Rows[0].Group)
	assert.Equal(t, 150.0, view.Rows[1].Value)

	resp = do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/aggregate", `{"group_by":"missing"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/aggregate", `{"value_column":"vendas"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleDatasets_CRUD(t *testing.T) {
	r, env := newTestRouter(t)

	resp := do(r, http.MethodGet, "/v1/datasets", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var list v1.DatasetListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	resp = do(r, http.MethodGet, "/v1/datasets/"+env.datasetID+"?preview=1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var ds v1.DatasetResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ds))
	assert.Equal(t, 3, ds.Rows)
	assert.Len(t, ds.Preview, 1)

	resp = do(r, http.MethodGet, "/v1/datasets/"+env.datasetID+"/summary", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"numeric"`)

	resp = do(r, http.MethodDelete, "/v1/datasets/"+env.datasetID, "")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(r, http.MethodGet, "/v1/datasets/"+env.datasetID, "")
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = do(r, http.MethodDelete, "/v1/datasets/"+env.datasetID, "")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleDashboard(t *testing.T) {
	r, env := newTestRouter(t)

	resp := do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/dashboard", `{"presets":["lucro_por_regiao"]}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var got v1.DashboardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got.Charts, 1)
	assert.Equal(t, "lucro_por_regiao", got.Charts[0].Preset)
	require.NotNil(t, got.Charts[0].Chart)

	resp = do(r, http.MethodPost, "/v1/datasets/"+env.datasetID+"/dashboard", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got.Charts, 3)
}

func TestHandleBackendsAndPresets(t *testing.T) {
	r, _ := newTestRouter(t, "png")

	resp := do(r, http.MethodGet, "/v1/backends", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var backends v1.BackendsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &backends))
	require.Len(t, backends.Backends, 5)
	assert.Equal(t, "echarts", backends.Backends[0].Name)
	assert.Equal(t, 1, backends.Backends[0].Position)
	assert.False(t, backends.Backends[2].Enabled)
	assert.True(t, backends.Backends[4].Enabled)

	resp = do(r, http.MethodGet, "/v1/presets", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "vendas_por_regiao")
}
