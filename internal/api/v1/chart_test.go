package v1

import (
	"encoding/json"
	"testing"

	"github.com/datainsight-lab/datainsight/internal/core/chart"
	"github.com/datainsight-lab/datainsight/internal/render"
)

func TestAggregateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AggregateRequest
		wantErr bool
		wantOp  string
	}{
		{name: "defaults to sum with a value column", req: AggregateRequest{GroupBy: "regiao", ValueColumn: "vendas"}, wantOp: "sum"},
		{name: "defaults to count without a value column", req: AggregateRequest{GroupBy: "regiao"}, wantOp: "count"},
		{name: "explicit mean", req: AggregateRequest{GroupBy: "regiao", ValueColumn: "vendas", Op: "mean"}, wantOp: "mean"},
		{name: "missing group_by", req: AggregateRequest{ValueColumn: "vendas"}, wantErr: true},
		{name: "unknown op", req: AggregateRequest{GroupBy: "regiao", Op: "median"}, wantErr: true},
		{name: "negative top_n", req: AggregateRequest{GroupBy: "regiao", TopN: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.req.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", tt.req.Op, tt.wantOp)
			}
		})
	}
}

func TestChartRequest_DecodesInlineSpec(t *testing.T) {
	body := `{"kind":"bar","x_field":"regiao","y_field":"vendas","extra":{"top_n":3},"backends":["ascii"]}`

	var req ChartRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Kind != chart.KindBar || req.XField != "regiao" || req.YField != "vendas" {
		t.Errorf("unexpected spec: %+v", req.Spec)
	}
	if req.Spec.TopN() != 3 {
		t.Errorf("TopN() = %d, want 3", req.Spec.TopN())
	}
	if len(req.Backends) != 1 || req.Backends[0] != "ascii" {
		t.Errorf("Backends = %v", req.Backends)
	}
}

func TestNewChartResponse(t *testing.T) {
	out := render.Outcome{
		State:    render.StateSucceeded,
		Backend:  "ascii",
		Artifact: &render.Artifact{Backend: "ascii", MediaType: "text/plain; charset=utf-8", Body: []byte("A | █ 1")},
		Failures: []render.Failure{{Backend: "echarts", Kind: render.FailureUnavailable, Reason: "disabled"}},
	}

	resp := NewChartResponse(out, nil)
	if resp.Body != "A | █ 1" || resp.MediaType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected body or media type: %+v", resp)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Backend != "echarts" {
		t.Errorf("failures not carried: %+v", resp.Failures)
	}

	failed := NewChartResponse(render.Outcome{State: render.StateAllFailed}, nil)
	if failed.Body != "" || failed.Backend != "" {
		t.Errorf("all_failed response must carry no artifact: %+v", failed)
	}
}
