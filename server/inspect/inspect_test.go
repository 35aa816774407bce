//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-flow-go/condition"
	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/output/inmemory"
	"trpc.group/trpc-go/trpc-flow-go/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	reg.MustRegister("trigger", registry.Capabilities{DisplayName: "Trigger"})
	reg.MustRegister("agent", registry.Capabilities{DisplayName: "Agent"})
	reg.MustRegister("classifier", registry.Capabilities{DisplayName: "Classifier", MultiOutputByHandle: true})
	reg.RegisterSchema("trigger", map[string]any{"message": "string"})
	return reg
}

func newTestGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "trigger_1", Type: "trigger"},
			{ID: "agent_1", Type: "agent", Data: map[string]any{"label": "Agent"}},
			{ID: "classifier_1", Type: "classifier"},
		},
		Edges: []graph.Edge{
			{Source: "trigger_1", Target: "agent_1", TargetHandle: "input-main"},
			{Source: "agent_1", Target: "classifier_1"},
			{
				Source: "classifier_1", Target: "agent_1",
				SourceHandle: "output-retry", TargetHandle: "input-main",
				Data: graph.EdgeData{Condition: &condition.Condition{Field: "category", Operator: condition.OpEqual, Value: "retry"}},
			},
		},
	}
}

func registerTestGraph(t *testing.T, srv *Server) string {
	t.Helper()
	body, err := json.Marshal(newTestGraph())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/graphs", bytes.NewReader(body))
	srv.Handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])
	return resp["id"]
}

func TestListOperators(t *testing.T) {
	srv := New(newTestRegistry(t))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/operators", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var ops []condition.Descriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ops))
	assert.Len(t, ops, len(condition.Catalog))
	assert.Equal(t, condition.OpEqual, ops[0].ID)
}

func TestValidateConditionEndpoint(t *testing.T) {
	srv := New(newTestRegistry(t))

	post := func(body string) map[string]any {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/conditions/validate", bytes.NewBufferString(body))
		srv.Handler().ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	resp := post(`{"field":"status","operator":"eq","value":"done"}`)
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "status equals done", resp["label"])

	resp = post(`{"field":"status","operator":"eq"}`)
	assert.Equal(t, false, resp["valid"])
	assert.Contains(t, resp["error"], "requires a value")
}

func TestRegisterGraphRejectsInvalid(t *testing.T) {
	srv := New(newTestRegistry(t))

	g := newTestGraph()
	g.Edges = append(g.Edges, graph.Edge{Source: "ghost", Target: "agent_1"})
	body, err := json.Marshal(g)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/graphs", bytes.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string][]graph.Diagnostic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["diagnostics"])
	assert.Equal(t, graph.CodeMissingNode, resp["diagnostics"][0].Code)
}

func TestProducersEndpoint(t *testing.T) {
	srv := New(newTestRegistry(t))
	id := registerTestGraph(t, srv)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/graphs/%s/nodes/agent_1/producers", id)
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Producers []json.RawMessage `json:"producers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Producers, 2)
}

func TestVariablesEndpointUsesLiveOutputs(t *testing.T) {
	store := inmemory.New()
	store.Set("trigger_1", "output_0", map[string]any{"message": "hello"})
	srv := New(newTestRegistry(t), WithStore(store))
	id := registerTestGraph(t, srv)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/graphs/%s/nodes/agent_1/variables", id)
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Variables []struct {
			Ref  string `json:"ref"`
			Live bool   `json:"live"`
		} `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Variables)
	assert.Equal(t, "{{trigger_1.message}}", resp.Variables[0].Ref)
	assert.True(t, resp.Variables[0].Live)
}

func TestActiveEdgesEndpointFailsClosed(t *testing.T) {
	srv := New(newTestRegistry(t))
	id := registerTestGraph(t, srv)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/graphs/%s/nodes/classifier_1/active-edges", id)
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ActiveEdges []graph.Edge `json:"active_edges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.ActiveEdges, "no output recorded, conditional edge stays inactive")
}

func TestActiveEdgesEndpointWithOutput(t *testing.T) {
	store := inmemory.New()
	store.Set("classifier_1", "output_retry", map[string]any{"category": "retry"})
	srv := New(newTestRegistry(t), WithStore(store))
	id := registerTestGraph(t, srv)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/graphs/%s/nodes/classifier_1/active-edges", id)
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ActiveEdges []graph.Edge `json:"active_edges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.ActiveEdges, 1)
	assert.Equal(t, "output-retry", resp.ActiveEdges[0].SourceHandle)
}

func TestPreviewEndpoint(t *testing.T) {
	srv := New(newTestRegistry(t))
	id := registerTestGraph(t, srv)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/graphs/"+id+"/preview", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Previews map[string]json.RawMessage `json:"previews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Previews, 3)
}

func TestUnknownGraphReturnsNotFound(t *testing.T) {
	srv := New(newTestRegistry(t))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/graphs/missing/nodes/n/producers", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
