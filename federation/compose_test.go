package federation_test

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/kylelemons/godebug/pretty"

	"go.appointy.com/subgraph/federation"
	"go.appointy.com/subgraph/schemabuilder"
)

func TestServiceField(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: `{ _service { sdl } }`,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})
	service := data["_service"].(map[string]interface{})
	if diff := pretty.Compare(service["sdl"], s.SDL()); diff != "" {
		t.Errorf("expected _service sdl to match SDL(): %s", diff)
	}
}

// The _Entity union lists entities in the order their annotations were
// declared, with extended and owned entities side by side.
func TestEntityUnionMembers(t *testing.T) {
	s, err := federation.BuildSchema(declareEntitySchema())
	if err != nil {
		t.Fatal(err)
	}

	schema := s.Schema()
	typ, ok := schema.TypeMap()["_Entity"]
	if !ok {
		t.Fatal("_Entity union not composed")
	}
	union, ok := typ.(*graphql.Union)
	if !ok {
		t.Fatalf("_Entity is %T, want union", typ)
	}

	var names []string
	for _, member := range union.Types() {
		names = append(names, member.Name())
	}
	if diff := pretty.Compare(names, []string{"A", "B"}); diff != "" {
		t.Errorf("expected union members to match: %s", diff)
	}
}

// A schema without entities still serves _service, but composes no _Entity
// union and no _entities field.
func TestComposeWithoutEntities(t *testing.T) {
	s, err := federation.BuildSchema(declareCamelSchema())
	if err != nil {
		t.Fatal(err)
	}

	schema := s.Schema()
	if _, ok := schema.TypeMap()["_Entity"]; ok {
		t.Error("_Entity composed for a schema without entities")
	}

	result := graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: `{ _service { sdl } }`,
	})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	result = graphql.Do(graphql.Params{
		Schema:        s.Schema(),
		RequestString: `{ _entities(representations: []) { __typename } }`,
	})
	if len(result.Errors) == 0 {
		t.Error("expected _entities to be absent without entities")
	}
}

func TestMustBuildSchemaPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic building schema without query fields")
		}
	}()

	federation.MustBuildSchema(schemabuilder.NewSchema())
}
