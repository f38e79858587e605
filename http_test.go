package subgraph_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"go.appointy.com/subgraph"
	"go.appointy.com/subgraph/federation"
	"go.appointy.com/subgraph/schemabuilder"
)

func testHTTPRequest(t *testing.T, req *http.Request, opts ...subgraph.HandlerOption) *httptest.ResponseRecorder {
	t.Helper()

	sb := schemabuilder.NewSchema()

	query := sb.Query()
	query.FieldFunc("mirror", func(args struct{ Value int64 }) int64 {
		return args.Value * -1
	})

	schema := federation.MustBuildSchema(sb)

	rr := httptest.NewRecorder()
	handler := subgraph.HTTPHandler(schema, opts...)

	handler.ServeHTTP(rr, req)
	return rr
}

func TestHTTPMustBePost(t *testing.T) {
	req, err := http.NewRequest("GET", "/graphql", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := testHTTPRequest(t, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, but received %d", rr.Code)
	}

	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"request must be a POST"}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPParseQuery(t *testing.T) {
	req, err := http.NewRequest("POST", "/graphql", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := testHTTPRequest(t, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, but received %d", rr.Code)
	}

	if diff := pretty.Compare(rr.Body.String(), `{"data":null,"errors":[{"message":"request must include a query"}]}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPSuccess(t *testing.T) {
	req, err := http.NewRequest("POST", "/graphql", strings.NewReader(`{"query": "query TestQuery($value: Int!) { mirror(value: $value) }", "variables": { "value": 1 }}`))
	if err != nil {
		t.Fatal(err)
	}

	rr := testHTTPRequest(t, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, but received %d", rr.Code)
	}

	if diff := pretty.Compare(rr.Body.String(), `{"data":{"mirror":-1},"errors":null}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPContentType(t *testing.T) {
	req, err := http.NewRequest("POST", "/graphql", strings.NewReader(`{"query": "{ mirror(value: 1) }"}`))
	if err != nil {
		t.Fatal(err)
	}

	rr := testHTTPRequest(t, req)

	if diff := pretty.Compare(rr.Header().Get("Content-Type"), "application/json"); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	var order []string
	outer := func(next subgraph.HandlerFunc) subgraph.HandlerFunc {
		return func(ctx context.Context, query string, variables map[string]interface{}) (interface{}, error) {
			order = append(order, "outer")
			return next(ctx, query, variables)
		}
	}
	inner := func(next subgraph.HandlerFunc) subgraph.HandlerFunc {
		return func(ctx context.Context, query string, variables map[string]interface{}) (interface{}, error) {
			order = append(order, "inner")
			return next(ctx, query, variables)
		}
	}

	req, err := http.NewRequest("POST", "/graphql", strings.NewReader(`{"query": "{ mirror(value: 2) }"}`))
	if err != nil {
		t.Fatal(err)
	}

	rr := testHTTPRequest(t, req, subgraph.WithMiddlewares(outer, inner))

	if diff := pretty.Compare(rr.Body.String(), `{"data":{"mirror":-2},"errors":null}`); diff != "" {
		t.Errorf("expected response to match, but received %s", diff)
	}
	if diff := pretty.Compare(order, []string{"outer", "inner"}); diff != "" {
		t.Errorf("expected middleware order to match: %s", diff)
	}
}

func TestHTTPExtractVariables(t *testing.T) {
	var got map[string]interface{}
	capture := func(next subgraph.HandlerFunc) subgraph.HandlerFunc {
		return func(ctx context.Context, query string, variables map[string]interface{}) (interface{}, error) {
			got = subgraph.ExtractVariables(ctx)
			return next(ctx, query, variables)
		}
	}

	req, err := http.NewRequest("POST", "/graphql", strings.NewReader(`{"query": "query TestQuery($value: Int!) { mirror(value: $value) }", "variables": { "value": 3 }}`))
	if err != nil {
		t.Fatal(err)
	}

	testHTTPRequest(t, req, subgraph.WithMiddlewares(capture))

	if diff := pretty.Compare(got, map[string]interface{}{"value": float64(3)}); diff != "" {
		t.Errorf("expected variables in context: %s", diff)
	}
}

func TestPlaygroundHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	subgraph.PlaygroundHandler("GraphQL Playground", "/graphql").ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for playground UI, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected text/html, got %s", ct)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "<title>GraphQL Playground</title>") {
		t.Errorf("expected playground HTML, got: %s", body)
	}
	if !strings.Contains(body, "'/graphql'") {
		t.Errorf("expected /graphql endpoint config in HTML")
	}
}
