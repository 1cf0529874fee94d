package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	logrus "github.com/sirupsen/logrus"

	"assetprov/core"
	"assetprov/registry"
)

func newTestServer() *Server {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	promReg := prometheus.NewRegistry()
	reg := registry.New(log)
	g := core.NewGraph(log, core.NewGraphMetrics(promReg))
	svc := NewResourceService(reg, g, core.NewIdentifierMetrics(promReg))
	return NewServer(":0", svc, promReg, log)
}

func TestHandleInfoEmpty(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["resources"].(float64) != 0 {
		t.Fatalf("expected 0 resources, got %v", body["resources"])
	}
}

func TestHandleDeriveIdentifierAndFetch(t *testing.T) {
	srv := newTestServer()

	reqBody, _ := json.Marshal(deriveRequest{
		ResourceType: "text",
		Attributes: map[string]interface{}{
			"content_hash": "abc123",
			"mime_type":    "text/plain",
			"charset":      "utf-8",
		},
		Owner: "alice",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewReader(reqBody))
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	id := created["identifier"]
	if id == "" {
		t.Fatal("expected non-empty identifier")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/resources/"+id, nil)
	getRR := httptest.NewRecorder()
	srv.router.ServeHTTP(getRR, getReq)
	if getRR.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching bundle, got %d: %s", getRR.Code, getRR.Body.String())
	}
}

func TestHandleDeriveIdentifierMissingRequiredAttribute(t *testing.T) {
	srv := newTestServer()
	reqBody, _ := json.Marshal(deriveRequest{ResourceType: "text", Attributes: map[string]interface{}{}})
	req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewReader(reqBody))
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleRegisterRoundTrip(t *testing.T) {
	srv := newTestServer()

	reqBody, _ := json.Marshal(deriveRequest{
		ResourceType: "code",
		Attributes: map[string]interface{}{
			"code_hash": "fedcba",
			"language":  "go",
			"version":   "1.0.0",
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewReader(reqBody))
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 deriving, got %d: %s", rr.Code, rr.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	regBody := bytes.NewReader([]byte(`{"owner":"alice"}`))
	regReq := httptest.NewRequest(http.MethodPost, "/api/resources/"+created["identifier"]+"/register", regBody)
	regRR := httptest.NewRecorder()
	srv.router.ServeHTTP(regRR, regReq)
	if regRR.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering, got %d: %s", regRR.Code, regRR.Body.String())
	}
	var tx map[string]interface{}
	if err := json.Unmarshal(regRR.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if tx["contentId"] == "" || tx["metadataHash"] == "" {
		t.Fatalf("expected contentId and metadataHash, got %v", tx)
	}
}

func TestMetricsEndpointServed(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
}

func TestHandleGetBundleNotFound(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/resources/did:asset:text:deadbeef", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
