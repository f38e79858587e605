package federation

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"go.appointy.com/subgraph/jerrors"
)

// resolveEntities serves the _entities field. Each representation is
// dispatched on its __typename to the matching entity's reference resolver;
// results are returned in representation order. Any failure aborts the whole
// call rather than yielding a partial list.
func (s *Schema) resolveEntities(p graphql.ResolveParams) (interface{}, error) {
	if len(s.entities) == 0 {
		return nil, &jerrors.NoEntities{}
	}

	raw, ok := p.Args["representations"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("representations must be a list")
	}

	results := make([]interface{}, 0, len(raw))
	for i, item := range raw {
		rep, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("representation %d is not an object", i)
		}
		typename, ok := rep["__typename"].(string)
		if !ok {
			return nil, &jerrors.UnknownType{}
		}
		obj, ok := s.entities[typename]
		if !ok {
			return nil, &jerrors.UnknownType{TypeName: typename}
		}
		entity, err := obj.ResolveEntity(p.Context, rep)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}
