// Package federation composes a declared schemabuilder.Schema into an
// executable schema carrying the Apollo Federation subgraph surface: the
// _service and _entities query fields, the _Entity union over every declared
// entity and the _Any representation scalar, together with the service SDL
// document describing this service's contribution to a supergraph.
package federation

import (
	"sort"

	"github.com/graphql-go/graphql"

	"go.appointy.com/subgraph/schemabuilder"
)

// Option configures a single composition.
type Option func(*options)

type options struct {
	autoCamelCase bool
}

// AutoCamelCase controls the re-casing of declared snake_case field names. It
// is enabled by default; disabling it renders every declared spelling
// unchanged.
func AutoCamelCase(enabled bool) Option {
	return func(o *options) { o.autoCamelCase = enabled }
}

// Schema is a composed schema. It is immutable once BuildSchema returns and
// is safe for concurrent query execution.
type Schema struct {
	schema   graphql.Schema
	sdl      string
	entities map[string]*schemabuilder.BuiltObject
}

// Schema returns the executable graphql schema.
func (s *Schema) Schema() graphql.Schema {
	return s.schema
}

// SDL returns the federation service document, as served by _service { sdl }.
func (s *Schema) SDL() string {
	return s.sdl
}

// BuildSchema runs the construction pass over the declared types and composes
// the result with the federation query surface. The service document is
// rendered before the federation fields are attached, so it lists only
// user-declared types and fields.
//
// A schema with zero declared entities is valid: _service is still served and
// the _Entity union and _entities field are omitted.
func BuildSchema(sb *schemabuilder.Schema, opts ...Option) (*Schema, error) {
	o := options{autoCamelCase: true}
	for _, opt := range opts {
		opt(&o)
	}

	built, err := sb.Build(schemabuilder.AutoCamelCase(o.autoCamelCase))
	if err != nil {
		return nil, err
	}

	var entities []*schemabuilder.BuiltObject
	for _, obj := range built.Objects {
		if obj.Entity {
			entities = append(entities, obj)
		}
	}
	// The _Entity union follows the order the entity annotations were
	// declared in, keeping the composed schema deterministic.
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].EntityIndex < entities[j].EntityIndex
	})

	s := &Schema{
		sdl:      Render(built),
		entities: make(map[string]*schemabuilder.BuiltObject, len(entities)),
	}
	for _, e := range entities {
		s.entities[e.Name] = e
	}

	service := graphql.NewObject(graphql.ObjectConfig{
		Name: "_Service",
		Fields: graphql.Fields{
			"sdl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.sdl, nil
				},
			},
		},
	})
	built.Query.AddFieldConfig("_service", &graphql.Field{
		Type: graphql.NewNonNull(service),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return struct{}{}, nil
		},
	})

	if len(entities) > 0 {
		members := make([]*graphql.Object, 0, len(entities))
		for _, e := range entities {
			members = append(members, e.Object)
		}
		entityUnion := graphql.NewUnion(graphql.UnionConfig{
			Name:  "_Entity",
			Types: members,
			ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
				if obj, ok := built.ObjectFor(p.Value); ok {
					return obj
				}
				return nil
			},
		})
		built.Query.AddFieldConfig("_entities", &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(entityUnion)),
			Args: graphql.FieldConfigArgument{
				"representations": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.NewList(anyScalar())),
				},
			},
			Resolve: s.resolveEntities,
		})
	}

	config := graphql.SchemaConfig{Query: built.Query}
	if built.Mutation != nil {
		config.Mutation = built.Mutation
	}
	composed, err := graphql.NewSchema(config)
	if err != nil {
		return nil, err
	}
	s.schema = composed

	return s, nil
}

// MustBuildSchema composes the schema and panics on error.
func MustBuildSchema(sb *schemabuilder.Schema, opts ...Option) *Schema {
	s, err := BuildSchema(sb, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// anyScalar builds the _Any scalar, which accepts arbitrary scalar or object
// input and passes it through untouched.
func anyScalar() *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name: "_Any",
		Serialize: func(value interface{}) interface{} {
			return value
		},
		ParseValue: func(value interface{}) interface{} {
			return value
		},
		ParseLiteral: schemabuilder.LiteralValue,
	})
}
