package schemabuilder

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/graphql-go/graphql"
)

// An argParser converts JSON-ish values received from the executor into
// addressable Go values.
type argParser struct {
	FromJSON func(value interface{}, dest reflect.Value) error
	Type     reflect.Type
}

type argField struct {
	field    reflect.StructField
	parser   *argParser
	optional bool
}

type cachedType struct {
	argType graphql.Input
	parser  *argParser
}

// makeArgParser constructs an argParser for the args struct of a field
// function, i.e. the struct whose fields become the field's arguments:
// obj.FieldFunc("messages", func(ctx context.Context, args struct{
// 	First int64
// }) []*Message { ... })
//
// Argument names go through the same name resolution as field names, so the
// parser and the returned argument configuration are both keyed by rendered
// names.
func (sb *schemaBuilder) makeArgParser(typ reflect.Type) (*argParser, []*BuiltArg, graphql.FieldConfigArgument, error) {
	if typ.Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("expected struct but received type %s", typ.Name())
	}

	fields := make(map[string]argField)
	var declared []string
	var fieldInfos = make(map[string]*graphQLFieldInfo)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			return nil, nil, nil, fmt.Errorf("bad arg type %s: anonymous fields not supported", typ)
		}

		fieldInfo, err := parseGraphQLFieldInfo(field)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bad type %s: %s", typ, err.Error())
		}
		if fieldInfo.Skipped {
			continue
		}

		if _, ok := fieldInfos[fieldInfo.Name]; ok {
			return nil, nil, nil, fmt.Errorf("bad arg type %s: duplicate field %s", typ, fieldInfo.Name)
		}
		declared = append(declared, fieldInfo.Name)
		fieldInfos[fieldInfo.Name] = fieldInfo
	}

	names := resolveNames(declared, sb.options.autoCamelCase)

	var args []*BuiltArg
	config := graphql.FieldConfigArgument{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			continue
		}
		fieldInfo, _ := parseGraphQLFieldInfo(field)
		if fieldInfo.Skipped {
			continue
		}

		parser, argType, err := sb.getInputParser(field.Type)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bad arg type %s: %s", typ, err)
		}

		optional := fieldInfo.OptionalInputField || field.Type.Kind() == reflect.Ptr
		if !optional {
			argType = graphql.NewNonNull(argType)
		}

		name := names.Resolve(fieldInfo.Name)
		fields[name] = argField{field: field, parser: parser, optional: optional}
		args = append(args, &BuiltArg{Name: name, Type: argType})
		config[name] = &graphql.ArgumentConfig{Type: argType}
	}

	parser := &argParser{
		FromJSON: func(value interface{}, dest reflect.Value) error {
			asMap, ok := value.(map[string]interface{})
			if !ok {
				return errors.New("not an object")
			}

			for name, field := range fields {
				value, ok := asMap[name]
				if !ok {
					if !field.optional {
						return fmt.Errorf("missing arg %s", name)
					}
					continue
				}
				fieldDest := dest.FieldByIndex(field.field.Index)
				if err := field.parser.FromJSON(value, fieldDest); err != nil {
					return fmt.Errorf("%s: %s", name, err)
				}
			}

			for name := range asMap {
				if _, ok := fields[name]; !ok {
					return fmt.Errorf("unknown arg %s", name)
				}
			}
			return nil
		},
		Type: typ,
	}

	return parser, args, config, nil
}

// getInputParser builds the parser and the graphql input type for a single
// argument or input-object field.
func (sb *schemaBuilder) getInputParser(typ reflect.Type) (*argParser, graphql.Input, error) {
	if typ.Kind() == reflect.Ptr {
		parser, argType, err := sb.getInputParser(typ.Elem())
		if err != nil {
			return nil, nil, err
		}
		return wrapPtrParser(parser), argType, nil
	}

	if mapping, ok := sb.schema.enumMappings[typ]; ok {
		return sb.getEnumArgParser(typ, mapping), sb.getEnum(typ), nil
	}

	if isScalarType(typ) {
		parser, ok := getScalarArgParser(typ)
		if !ok {
			return nil, nil, fmt.Errorf("%s can not be used as an input", typ)
		}
		return parser, sb.getScalar(typ), nil
	}

	switch typ.Kind() {
	case reflect.Slice:
		return sb.generateSliceParser(typ)
	case reflect.Struct:
		return sb.buildInputObject(typ)
	default:
		return nil, nil, fmt.Errorf("bad arg type %s: should be struct, scalar, pointer, or a slice", typ)
	}
}

func wrapPtrParser(inner *argParser) *argParser {
	return &argParser{
		FromJSON: func(value interface{}, dest reflect.Value) error {
			if value == nil {
				// nil pointer
				return nil
			}

			ptr := reflect.New(inner.Type)
			if err := inner.FromJSON(value, ptr.Elem()); err != nil {
				return err
			}
			dest.Set(ptr)
			return nil
		},
		Type: reflect.PtrTo(inner.Type),
	}
}

func (sb *schemaBuilder) getEnumArgParser(typ reflect.Type, mapping *EnumMapping) *argParser {
	return &argParser{
		FromJSON: func(value interface{}, dest reflect.Value) error {
			if v := reflect.ValueOf(value); v.IsValid() && v.Type() == typ {
				dest.Set(v)
				return nil
			}
			if s, ok := value.(string); ok {
				if enumVal, ok := mapping.Map[s]; ok {
					dest.Set(reflect.ValueOf(enumVal))
					return nil
				}
				return fmt.Errorf("invalid value %s for enum %s", s, mapping.Name)
			}
			return fmt.Errorf("invalid value for enum %s", mapping.Name)
		},
		Type: typ,
	}
}

// generateSliceParser generates the parser for a slice input by generating
// the parser for the underlying type and using it to fill the values in list.
func (sb *schemaBuilder) generateSliceParser(typ reflect.Type) (*argParser, graphql.Input, error) {
	inner, argType, err := sb.getInputParser(typ.Elem())
	if err != nil {
		return nil, nil, err
	}

	return &argParser{
		FromJSON: func(value interface{}, dest reflect.Value) error {
			asSlice, ok := value.([]interface{})
			if !ok {
				return errors.New("not a list")
			}

			sourceSlice := reflect.MakeSlice(typ, len(asSlice), len(asSlice))
			for i, value := range asSlice {
				if err := inner.FromJSON(value, sourceSlice.Index(i)); err != nil {
					return err
				}
			}
			dest.Set(sourceSlice)

			return nil
		},
		Type: typ,
	}, graphql.NewList(argType), nil
}

// buildInputObject builds the graphql input object and parser for a struct
// registered via Schema.InputObject. The parser constructs the target through
// the registered fill functions.
func (sb *schemaBuilder) buildInputObject(typ reflect.Type) (*argParser, graphql.Input, error) {
	if cached, ok := sb.typeCache[typ]; ok {
		return cached.parser, cached.argType, nil
	}

	obj, ok := sb.schema.inputObjects[typ]
	if !ok {
		return nil, nil, fmt.Errorf("%s not registered as input object", typ.Name())
	}

	inputFields := graphql.InputObjectConfigFieldMap{}
	argType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:        obj.Name,
		Description: obj.Description,
		Fields: graphql.InputObjectConfigFieldMapThunk(func() graphql.InputObjectConfigFieldMap {
			return inputFields
		}),
	})

	fields := make(map[string]argField)
	parser := &argParser{
		FromJSON: func(value interface{}, dest reflect.Value) error {
			asMap, ok := value.(map[string]interface{})
			if !ok {
				return errors.New("not an object")
			}

			target := reflect.New(typ)
			for name, field := range fields {
				value, ok := asMap[name]
				if !ok {
					continue
				}
				function := obj.Fields[name]
				sourceTyp := reflect.TypeOf(function).In(1)
				source := reflect.New(sourceTyp).Elem()

				if err := field.parser.FromJSON(value, source); err != nil {
					return fmt.Errorf("%s: %s", name, err)
				}

				output := reflect.ValueOf(function).Call([]reflect.Value{target, source})
				if len(output) > 0 && !output[0].IsNil() {
					return output[0].Interface().(error)
				}
			}

			for name := range asMap {
				if _, ok := fields[name]; !ok {
					return fmt.Errorf("unknown field %s", name)
				}
			}

			dest.Set(target.Elem())
			return nil
		},
		Type: typ,
	}

	// Cache type information ahead of time to catch self-reference.
	sb.typeCache[typ] = cachedType{argType: argType, parser: parser}

	built := &BuiltInput{Name: obj.Name}
	for _, name := range sortedKeys(obj.Fields) {
		function := obj.Fields[name]
		sourceTyp := reflect.TypeOf(function).In(1)

		fieldParser, fieldArgTyp, err := sb.getInputParser(sourceTyp)
		if err != nil {
			return nil, nil, fmt.Errorf("input object %s: %s", obj.Name, err)
		}

		fields[name] = argField{parser: fieldParser, optional: true}
		inputFields[name] = &graphql.InputObjectFieldConfig{Type: fieldArgTyp}
		built.Fields = append(built.Fields, &BuiltArg{Name: name, Type: fieldArgTyp})
	}
	sb.built.Inputs = append(sb.built.Inputs, built)

	return parser, argType, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
