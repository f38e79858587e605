package federation_test

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/kylelemons/godebug/pretty"

	"go.appointy.com/subgraph/federation"
	"go.appointy.com/subgraph/schemabuilder"
)

const entitiesQuery = `
query ($representations: [_Any]!) {
	_entities(representations: $representations) {
		__typename
		... on A { id }
		... on B { id }
	}
}`

// With no ResolveReference registered, representations construct entity
// values field by field. Results come back in representation order.
func TestEntitiesDefaultConstructor(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: entitiesQuery,
		VariableValues: map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"__typename": "B", "id": "b1"},
				map[string]interface{}{"__typename": "A", "id": "a1"},
				map[string]interface{}{"__typename": "B", "id": "b2"},
			},
		},
	})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	want := map[string]interface{}{
		"_entities": []interface{}{
			map[string]interface{}{"__typename": "B", "id": "b1"},
			map[string]interface{}{"__typename": "A", "id": "a1"},
			map[string]interface{}{"__typename": "B", "id": "b2"},
		},
	}
	if diff := pretty.Compare(result.Data, want); diff != "" {
		t.Errorf("expected entities in representation order: %s", diff)
	}
}

func TestEntitiesResolveReference(t *testing.T) {
	sb := declareEntitySchema()
	sb.Object("B", entityB{}).ResolveReference(func(ctx context.Context, rep map[string]interface{}) (interface{}, error) {
		id, _ := rep["id"].(string)
		return &entityB{ID: schemabuilder.ID{Value: "resolved-" + id}}, nil
	})

	s, err := federation.BuildSchema(sb)
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: entitiesQuery,
		VariableValues: map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"__typename": "B", "id": "b1"},
			},
		},
	})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	want := map[string]interface{}{
		"_entities": []interface{}{
			map[string]interface{}{"__typename": "B", "id": "resolved-b1"},
		},
	}
	if diff := pretty.Compare(result.Data, want); diff != "" {
		t.Errorf("expected resolver output: %s", diff)
	}
}

// A representation naming a type that is not a declared entity aborts the
// whole call instead of returning a partial list.
func TestEntitiesUnknownTypeAborts(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: entitiesQuery,
		VariableValues: map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"__typename": "B", "id": "b1"},
				map[string]interface{}{"__typename": "C", "id": "c1"},
			},
		},
	})
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for unknown entity type")
	}
	if got := result.Errors[0].Message; got != `unknown entity type "C"` {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestEntitiesMissingTypenameAborts(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: entitiesQuery,
		VariableValues: map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"id": "b1"},
			},
		},
	})
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a representation without __typename")
	}
	if got := result.Errors[0].Message; got != "representation is missing __typename" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestEntitiesInlineRepresentations(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema: s.Schema(),
		RequestString: `
{
	_entities(representations: [{__typename: "A", id: "a1"}]) {
		... on A { id }
	}
}`,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	want := map[string]interface{}{
		"_entities": []interface{}{
			map[string]interface{}{"id": "a1"},
		},
	}
	if diff := pretty.Compare(result.Data, want); diff != "" {
		t.Errorf("expected inline representation to resolve: %s", diff)
	}
}
