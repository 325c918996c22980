package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postCalc(t *testing.T, server *http.Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	return resp
}

func TestCalcMul(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := postCalc(t, server, "/api/calc/mul", `{"x":6,"y":7}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result IntResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result.Result != 42 {
		t.Fatalf("expected 42, got %d", result.Result)
	}
}

func TestCalcSum(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := postCalc(t, server, "/api/calc/sum", `{"values":[1,2,3,4]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result IntResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result.Result != 10 {
		t.Fatalf("expected 10, got %d", result.Result)
	}
}

func TestCalcOperations(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := postCalc(t, server, "/api/calc/ops", `{"x":10,"y":3}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result OpsResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	want := OpsResult{Add: 13, Sub: 7, Mul: 30, Div: 3}
	if result != want {
		t.Fatalf("expected %+v, got %+v", want, result)
	}

	resp = postCalc(t, server, "/api/calc/ops", `{"x":10,"y":0}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for divide by zero, got %d", resp.Code)
	}
}

func TestCalcVectorSum(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := postCalc(t, server, "/api/calc/vector-sum", `{"x":1.5,"y":2,"z":0.5}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result FloatResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result.Result != 4 {
		t.Fatalf("expected 4, got %v", result.Result)
	}
}
