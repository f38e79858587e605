package schemabuilder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// BuildOption configures a single construction pass.
type BuildOption func(*buildOptions)

type buildOptions struct {
	autoCamelCase bool
}

// AutoCamelCase controls whether declared snake_case field names are re-cased
// to camelCase during the build. It is enabled by default.
func AutoCamelCase(enabled bool) BuildOption {
	return func(o *buildOptions) { o.autoCamelCase = enabled }
}

// Built is the product of one construction pass over a Schema. It holds the
// executable graphql types plus the per-type descriptors, in declaration
// order, that renderers and the federation layer read. A Built is never
// mutated after Build returns; repeated builds produce independent values.
type Built struct {
	Query    *graphql.Object
	Mutation *graphql.Object

	Objects []*BuiltObject
	Enums   []*BuiltEnum
	Inputs  []*BuiltInput
	Unions  []*BuiltUnion
	Scalars []string

	objectsByType map[reflect.Type]*graphql.Object
}

// ObjectFor returns the graphql object built for the given Go value's type.
func (b *Built) ObjectFor(value interface{}) (*graphql.Object, bool) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		return nil, false
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	obj, ok := b.objectsByType[typ]
	return obj, ok
}

// BuiltObject describes one built object type: its final name, its fields in
// declaration order with resolved names, and its federation role.
type BuiltObject struct {
	Name   string
	Object *graphql.Object
	Fields []*BuiltField

	IsQuery    bool
	IsMutation bool

	// Entity is set for types declared with Key or Extend. Keys carries the
	// key field-selection expressions rewritten to resolved names.
	Entity      bool
	Extended    bool
	EntityIndex int
	Keys        []string

	goType      reflect.Type
	refResolver ReferenceResolver
	construct   func(map[string]interface{}) (interface{}, error)
}

// ResolveEntity turns an entity representation into a value of the object's
// Go type, using the registered ResolveReference resolver if any and falling
// back to constructing the struct from the representation's fields.
func (o *BuiltObject) ResolveEntity(ctx context.Context, representation map[string]interface{}) (interface{}, error) {
	if o.refResolver != nil {
		return o.refResolver(ctx, representation)
	}
	if o.construct == nil {
		return nil, fmt.Errorf("type %s cannot be constructed from a representation", o.Name)
	}
	return o.construct(representation)
}

// BuiltField describes one built field: the spelling it was declared with,
// the rendered name exposed by the schema, and its federation flags with
// selection expressions already rewritten to resolved names.
type BuiltField struct {
	DeclaredName string
	Name         string
	Type         graphql.Output
	Args         []*BuiltArg

	External bool
	Requires string
	Provides string
}

// BuiltArg is a named argument or input-object field.
type BuiltArg struct {
	Name string
	Type graphql.Input
}

// BuiltEnum lists an enum's values in rendered order.
type BuiltEnum struct {
	Name        string
	Values      []string
	Description string
}

// BuiltInput lists an input object's fields in rendered order.
type BuiltInput struct {
	Name   string
	Fields []*BuiltArg
}

// BuiltUnion lists a union's member type names in declaration order.
type BuiltUnion struct {
	Name  string
	Types []string
}

type schemaBuilder struct {
	schema  *Schema
	options buildOptions
	built   *Built

	objects       map[reflect.Type]*graphql.Object
	enums         map[reflect.Type]*graphql.Enum
	unions        map[reflect.Type]*unionInfo
	customScalars map[reflect.Type]*graphql.Scalar
	typeCache     map[reflect.Type]cachedType
}

type unionInfo struct {
	union  *graphql.Union
	unwrap func(interface{}) (interface{}, error)
}

// Build runs the construction pass over every declared type and produces the
// executable graphql types. The registry itself is left untouched, so a
// Schema can be built repeatedly, also with different options.
func (s *Schema) Build(opts ...BuildOption) (*Built, error) {
	options := buildOptions{autoCamelCase: true}
	for _, opt := range opts {
		opt(&options)
	}

	sb := &schemaBuilder{
		schema:        s,
		options:       options,
		built:         &Built{objectsByType: make(map[reflect.Type]*graphql.Object)},
		objects:       make(map[reflect.Type]*graphql.Object),
		enums:         make(map[reflect.Type]*graphql.Enum),
		unions:        make(map[reflect.Type]*unionInfo),
		customScalars: make(map[reflect.Type]*graphql.Scalar),
		typeCache:     make(map[reflect.Type]cachedType),
	}

	// First create every object empty so that cyclic field references
	// resolve, then fill in fields in declaration order.
	for _, name := range s.objectOrder {
		o := s.objects[name]
		goType := indirectType(reflect.TypeOf(o.Type))
		obj := graphql.NewObject(graphql.ObjectConfig{
			Name:        o.Name,
			Description: o.Description,
			Fields:      graphql.Fields{},
		})
		sb.objects[goType] = obj
		sb.built.objectsByType[goType] = obj
	}

	for _, name := range s.objectOrder {
		o := s.objects[name]
		goType := indirectType(reflect.TypeOf(o.Type))

		if len(o.fieldOrder) == 0 {
			if goType == reflect.TypeOf(mutation{}) {
				continue
			}
			return nil, fmt.Errorf("object %s has no fields", o.Name)
		}

		bo, err := sb.buildObject(o, goType)
		if err != nil {
			return nil, err
		}
		sb.built.Objects = append(sb.built.Objects, bo)

		switch goType {
		case reflect.TypeOf(query{}):
			bo.IsQuery = true
			sb.built.Query = bo.Object
		case reflect.TypeOf(mutation{}):
			bo.IsMutation = true
			sb.built.Mutation = bo.Object
		}
	}

	if sb.built.Query == nil {
		return nil, errors.New("schema requires a query type with at least one field")
	}

	return sb.built, nil
}

// MustBuild builds the schema and panics on error.
func (s *Schema) MustBuild(opts ...BuildOption) *Built {
	built, err := s.Build(opts...)
	if err != nil {
		panic(err)
	}
	return built
}

func (sb *schemaBuilder) buildObject(o *Object, goType reflect.Type) (*BuiltObject, error) {
	gobj := sb.objects[goType]
	names := resolveNames(o.fieldOrder, sb.options.autoCamelCase)

	bo := &BuiltObject{
		Name:        o.Name,
		Object:      gobj,
		Entity:      o.keys != nil,
		Extended:    o.extended,
		EntityIndex: o.entityIndex,
		goType:      goType,
		refResolver: o.refResolver,
	}
	for _, expr := range o.keys {
		bo.Keys = append(bo.Keys, names.RewriteSelection(expr))
	}

	for _, declared := range o.fieldOrder {
		m := o.Methods[declared]

		field, bf, err := sb.buildMethod(goType, m)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %s", declared, o.Name, err)
		}

		bf.DeclaredName = declared
		bf.Name = names.Resolve(declared)
		bf.External = o.external[declared]
		if expr, ok := o.requires[declared]; ok {
			bf.Requires = names.RewriteSelection(expr)
		}
		if expr, ok := o.provides[declared]; ok {
			bf.Provides = names.RewriteSelection(expr)
		}

		gobj.AddFieldConfig(bf.Name, field)
		bo.Fields = append(bo.Fields, bf)
	}

	if bo.Entity && bo.refResolver == nil {
		bo.construct = sb.makeConstructor(o.Name, goType)
	}

	return bo, nil
}

// buildMethod converts a field function into a graphql field. The function
// may take an optional context, an optional source (a value or pointer of the
// object's Go type) and an optional args struct, and must return a value plus
// an optional error.
func (sb *schemaBuilder) buildMethod(goType reflect.Type, m *method) (*graphql.Field, *BuiltField, error) {
	fn := reflect.ValueOf(m.Fn)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, nil, errors.New("not a function")
	}
	t := fn.Type()

	in := 0
	hasCtx := in < t.NumIn() && t.In(in) == contextType
	if hasCtx {
		in++
	}

	sourceIdx := -1
	wantPtrSource := false
	if in < t.NumIn() && (t.In(in) == goType || t.In(in) == reflect.PtrTo(goType)) {
		sourceIdx = in
		wantPtrSource = t.In(in).Kind() == reflect.Ptr
		in++
	}

	var parser *argParser
	var builtArgs []*BuiltArg
	var argConfig graphql.FieldConfigArgument
	var argType reflect.Type
	if in < t.NumIn() && t.In(in).Kind() == reflect.Struct {
		var err error
		argType = t.In(in)
		parser, builtArgs, argConfig, err = sb.makeArgParser(argType)
		if err != nil {
			return nil, nil, err
		}
		in++
	}
	if in != t.NumIn() {
		return nil, nil, fmt.Errorf("unexpected argument %s", t.In(in))
	}

	hasErr := false
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errType {
			return nil, nil, errors.New("must return a value in addition to the error")
		}
	case 2:
		if t.Out(1) != errType {
			return nil, nil, errors.New("second return value must be an error")
		}
		hasErr = true
	default:
		return nil, nil, errors.New("must return a value and an optional error")
	}

	output, unwrap, err := sb.getOutputType(t.Out(0))
	if err != nil {
		return nil, nil, err
	}
	if m.MarkedNonNullable {
		output = graphql.NewNonNull(output)
	}

	resolve := func(p graphql.ResolveParams) (interface{}, error) {
		callArgs := make([]reflect.Value, t.NumIn())
		if hasCtx {
			ctx := p.Context
			if ctx == nil {
				ctx = context.Background()
			}
			callArgs[0] = reflect.ValueOf(ctx)
		}
		if sourceIdx >= 0 {
			v, err := sourceValue(goType, wantPtrSource, p.Source)
			if err != nil {
				return nil, err
			}
			callArgs[sourceIdx] = v
		}
		if parser != nil {
			dest := reflect.New(argType).Elem()
			args := p.Args
			if args == nil {
				args = map[string]interface{}{}
			}
			if err := parser.FromJSON(args, dest); err != nil {
				return nil, err
			}
			callArgs[t.NumIn()-1] = dest
		}

		out := fn.Call(callArgs)
		if hasErr {
			if errVal := out[len(out)-1]; !errVal.IsNil() {
				return nil, errVal.Interface().(error)
			}
		}
		result := out[0].Interface()
		if unwrap != nil {
			return unwrap(result)
		}
		return result, nil
	}

	field := &graphql.Field{
		Type:        output,
		Args:        argConfig,
		Resolve:     resolve,
		Description: m.Description,
	}
	bf := &BuiltField{Type: output, Args: builtArgs}
	return field, bf, nil
}

func sourceValue(goType reflect.Type, wantPtr bool, source interface{}) (reflect.Value, error) {
	if source == nil {
		if wantPtr {
			return reflect.Zero(reflect.PtrTo(goType)), nil
		}
		return reflect.Zero(goType), nil
	}

	v := reflect.ValueOf(source)
	if wantPtr {
		if v.Type() == reflect.PtrTo(goType) {
			return v, nil
		}
		if v.Type() == goType {
			ptr := reflect.New(goType)
			ptr.Elem().Set(v)
			return ptr, nil
		}
	} else {
		if v.Type() == goType {
			return v, nil
		}
		if v.Type() == reflect.PtrTo(goType) {
			if v.IsNil() {
				return reflect.Zero(goType), nil
			}
			return v.Elem(), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("invalid source type %T for %s", source, goType)
}

// getOutputType maps a Go return type onto a graphql output type. The second
// return value unwraps one-hot union struct values into the set member and is
// nil for every other type.
func (sb *schemaBuilder) getOutputType(typ reflect.Type) (graphql.Output, func(interface{}) (interface{}, error), error) {
	if typ.Kind() == reflect.Ptr {
		return sb.getOutputType(typ.Elem())
	}

	if _, ok := sb.schema.enumMappings[typ]; ok {
		return sb.getEnum(typ), nil, nil
	}

	if isScalarType(typ) {
		return sb.getScalar(typ), nil, nil
	}

	switch typ.Kind() {
	case reflect.Slice:
		elem, unwrap, err := sb.getOutputType(typ.Elem())
		if err != nil {
			return nil, nil, err
		}
		if unwrap != nil {
			return nil, nil, fmt.Errorf("union type %s can not be used in a list", typ.Elem())
		}
		return graphql.NewList(elem), nil, nil
	case reflect.Struct:
		if hasUnionMarkerEmbedded(typ) {
			info, err := sb.buildUnion(typ)
			if err != nil {
				return nil, nil, err
			}
			return info.union, info.unwrap, nil
		}
		if obj, ok := sb.objects[typ]; ok {
			return obj, nil, nil
		}
		return nil, nil, fmt.Errorf("%s not registered as object", typ)
	default:
		return nil, nil, fmt.Errorf("bad return type %s", typ)
	}
}

func (sb *schemaBuilder) getEnum(typ reflect.Type) *graphql.Enum {
	if enum, ok := sb.enums[typ]; ok {
		return enum
	}

	mapping := sb.schema.enumMappings[typ]
	names := make([]string, 0, len(mapping.Map))
	for name := range mapping.Map {
		names = append(names, name)
	}
	sort.Strings(names)

	values := graphql.EnumValueConfigMap{}
	for _, name := range names {
		values[name] = &graphql.EnumValueConfig{Value: mapping.Map[name]}
	}
	enum := graphql.NewEnum(graphql.EnumConfig{
		Name:        mapping.Name,
		Values:      values,
		Description: mapping.Description,
	})
	sb.enums[typ] = enum
	sb.built.Enums = append(sb.built.Enums, &BuiltEnum{
		Name:        mapping.Name,
		Values:      names,
		Description: mapping.Description,
	})
	return enum
}

func (sb *schemaBuilder) getScalar(typ reflect.Type) *graphql.Scalar {
	name := scalars[typ]
	switch name {
	case "Boolean":
		return graphql.Boolean
	case "Int":
		return graphql.Int
	case "Float":
		return graphql.Float
	case "String":
		return graphql.String
	}

	if scalar, ok := sb.customScalars[typ]; ok {
		return scalar
	}
	scalar := graphql.NewScalar(graphql.ScalarConfig{
		Name:         name,
		Serialize:    serializeJSON,
		ParseValue:   parseSame,
		ParseLiteral: LiteralValue,
	})
	sb.customScalars[typ] = scalar
	if name != "ID" {
		// ID is part of the base type system; everything else is declared
		// in the service document.
		sb.built.Scalars = append(sb.built.Scalars, name)
	}
	return scalar
}

func hasUnionMarkerEmbedded(typ reflect.Type) bool {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Type == unionType {
			return true
		}
	}
	return false
}

func (sb *schemaBuilder) buildUnion(typ reflect.Type) (*unionInfo, error) {
	if info, ok := sb.unions[typ]; ok {
		return info, nil
	}

	var members []*graphql.Object
	var memberNames []string
	var memberIdx []int
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Type == unionType {
			continue
		}
		if field.Type.Kind() != reflect.Ptr || field.Type.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("bad union type %s: member %s must be a pointer to a registered object", typ, field.Name)
		}
		obj, ok := sb.objects[field.Type.Elem()]
		if !ok {
			return nil, fmt.Errorf("bad union type %s: %s not registered as object", typ, field.Type.Elem())
		}
		members = append(members, obj)
		memberNames = append(memberNames, obj.Name())
		memberIdx = append(memberIdx, i)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("bad union type %s: no members", typ)
	}

	built := sb.built
	union := graphql.NewUnion(graphql.UnionConfig{
		Name:  typ.Name(),
		Types: members,
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			if obj, ok := built.ObjectFor(p.Value); ok {
				return obj
			}
			return nil
		},
	})

	unwrap := func(v interface{}) (interface{}, error) {
		val := reflect.ValueOf(v)
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return nil, nil
			}
			val = val.Elem()
		}
		var member interface{}
		for _, i := range memberIdx {
			fv := val.Field(i)
			if fv.IsNil() {
				continue
			}
			if member != nil {
				return nil, fmt.Errorf("union %s has more than one member set", typ.Name())
			}
			member = fv.Interface()
		}
		return member, nil
	}

	info := &unionInfo{union: union, unwrap: unwrap}
	sb.unions[typ] = info
	sb.built.Unions = append(sb.built.Unions, &BuiltUnion{Name: typ.Name(), Types: memberNames})
	return info, nil
}

// makeConstructor builds the default representation constructor for an
// entity: it fills the matching struct fields of a fresh value from the
// supplied representation. Field names are resolved with the same policy as
// declared field names so representations always use rendered names.
func (sb *schemaBuilder) makeConstructor(name string, goType reflect.Type) func(map[string]interface{}) (interface{}, error) {
	type setter struct {
		index  []int
		parser *argParser
	}

	var declared []string
	byDeclared := make(map[string]reflect.StructField)
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if field.Anonymous {
			continue
		}
		info, err := parseGraphQLFieldInfo(field)
		if err != nil || info.Skipped {
			continue
		}
		declared = append(declared, info.Name)
		byDeclared[info.Name] = field
	}
	names := resolveNames(declared, sb.options.autoCamelCase)

	setters := make(map[string]setter)
	for _, d := range declared {
		field := byDeclared[d]
		parser, _, err := sb.getInputParser(field.Type)
		if err != nil {
			// Not settable from a representation; resolved lazily by the
			// field's own resolver instead.
			continue
		}
		setters[names.Resolve(d)] = setter{index: field.Index, parser: parser}
	}

	return func(representation map[string]interface{}) (interface{}, error) {
		target := reflect.New(goType)
		for key, value := range representation {
			if key == "__typename" {
				continue
			}
			s, ok := setters[key]
			if !ok {
				return nil, fmt.Errorf("type %s has no settable field %q", name, key)
			}
			if err := s.parser.FromJSON(value, target.Elem().FieldByIndex(s.index)); err != nil {
				return nil, fmt.Errorf("field %s of %s: %s", key, name, err)
			}
		}
		return target.Interface(), nil
	}
}

func indirectType(typ reflect.Type) reflect.Type {
	if typ.Kind() == reflect.Ptr {
		return typ.Elem()
	}
	return typ
}

// serializeJSON serializes a scalar value by round-tripping it through its
// JSON representation, honouring MarshalJSON implementations.
func serializeJSON(value interface{}) interface{} {
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func parseSame(value interface{}) interface{} {
	return value
}

// LiteralValue converts a query literal into the plain JSON-ish value handed
// to a scalar's arg parser.
func LiteralValue(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		if i, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return i
		}
		return nil
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return nil
	case *ast.EnumValue:
		return v.Value
	case *ast.ListValue:
		values := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			values = append(values, LiteralValue(item))
		}
		return values
	case *ast.ObjectValue:
		value := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			value[field.Name.Value] = LiteralValue(field.Value)
		}
		return value
	}
	return nil
}

// scalars maps Go types onto scalar type names. RegisterScalar extends it at
// process start; the wrapper scalars are built in.
var scalars = map[reflect.Type]string{
	reflect.TypeOf(false):       "Boolean",
	reflect.TypeOf(int(0)):      "Int",
	reflect.TypeOf(int8(0)):     "Int",
	reflect.TypeOf(int16(0)):    "Int",
	reflect.TypeOf(int32(0)):    "Int",
	reflect.TypeOf(int64(0)):    "Int",
	reflect.TypeOf(uint(0)):     "Int",
	reflect.TypeOf(uint8(0)):    "Int",
	reflect.TypeOf(uint16(0)):   "Int",
	reflect.TypeOf(uint32(0)):   "Int",
	reflect.TypeOf(uint64(0)):   "Int",
	reflect.TypeOf(float32(0)):  "Float",
	reflect.TypeOf(float64(0)):  "Float",
	reflect.TypeOf(""):          "String",
	reflect.TypeOf(ID{}):        "ID",
	reflect.TypeOf(Map{}):       "Map",
	reflect.TypeOf(Timestamp{}): "Timestamp",
	reflect.TypeOf(Duration{}):  "Duration",
	reflect.TypeOf(Bytes{}):     "Bytes",
}

var scalarArgParsers = map[reflect.Type]*argParser{}

func init() {
	for typ, parse := range map[reflect.Type]func(value interface{}, dest reflect.Value) error{
		reflect.TypeOf(false): func(value interface{}, dest reflect.Value) error {
			b, ok := value.(bool)
			if !ok {
				return errors.New("not a bool")
			}
			dest.SetBool(b)
			return nil
		},
		reflect.TypeOf(""): func(value interface{}, dest reflect.Value) error {
			s, ok := value.(string)
			if !ok {
				return errors.New("not a string")
			}
			dest.SetString(s)
			return nil
		},
		reflect.TypeOf(ID{}): func(value interface{}, dest reflect.Value) error {
			switch v := value.(type) {
			case string:
				dest.Set(reflect.ValueOf(ID{Value: v}))
			case int64:
				dest.Set(reflect.ValueOf(ID{Value: strconv.FormatInt(v, 10)}))
			case float64:
				dest.Set(reflect.ValueOf(ID{Value: strconv.FormatFloat(v, 'g', -1, 64)}))
			default:
				return errors.New("not an id")
			}
			return nil
		},
		reflect.TypeOf(Timestamp{}): func(value interface{}, dest reflect.Value) error {
			s, ok := value.(string)
			if !ok {
				return errors.New("not a timestamp string")
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return err
			}
			dest.FieldByName("Seconds").SetInt(t.Unix())
			dest.FieldByName("Nanos").SetInt(int64(t.Nanosecond()))
			return nil
		},
		reflect.TypeOf(Duration{}): func(value interface{}, dest reflect.Value) error {
			seconds, err := asInt64(value)
			if err != nil {
				return err
			}
			dest.FieldByName("Seconds").SetInt(seconds)
			return nil
		},
		reflect.TypeOf(Bytes{}): func(value interface{}, dest reflect.Value) error {
			s, ok := value.(string)
			if !ok {
				return errors.New("not a base64 string")
			}
			data, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return err
			}
			dest.FieldByName("Value").SetBytes(data)
			return nil
		},
		reflect.TypeOf(Map{}): func(value interface{}, dest reflect.Value) error {
			s, ok := value.(string)
			if !ok {
				return errors.New("not a base64 string")
			}
			data, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return err
			}
			dest.FieldByName("Value").SetString(string(data))
			return nil
		},
	} {
		scalarArgParsers[typ] = &argParser{FromJSON: parse, Type: typ}
	}

	for _, typ := range []reflect.Type{
		reflect.TypeOf(int(0)), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)),
		reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
	} {
		scalarArgParsers[typ] = &argParser{FromJSON: parseSignedInt, Type: typ}
	}
	for _, typ := range []reflect.Type{
		reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)),
		reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)),
	} {
		scalarArgParsers[typ] = &argParser{FromJSON: parseUnsignedInt, Type: typ}
	}
	for _, typ := range []reflect.Type{reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0))} {
		scalarArgParsers[typ] = &argParser{FromJSON: parseFloat, Type: typ}
	}
}

func asInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, errors.New("not a whole number")
		}
		return int64(v), nil
	default:
		return 0, errors.New("not a number")
	}
}

func parseSignedInt(value interface{}, dest reflect.Value) error {
	i, err := asInt64(value)
	if err != nil {
		return err
	}
	if dest.OverflowInt(i) {
		return errors.New("number out of range")
	}
	dest.SetInt(i)
	return nil
}

func parseUnsignedInt(value interface{}, dest reflect.Value) error {
	i, err := asInt64(value)
	if err != nil {
		return err
	}
	if i < 0 || dest.OverflowUint(uint64(i)) {
		return errors.New("number out of range")
	}
	dest.SetUint(uint64(i))
	return nil
}

func parseFloat(value interface{}, dest reflect.Value) error {
	switch v := value.(type) {
	case int:
		dest.SetFloat(float64(v))
	case int64:
		dest.SetFloat(float64(v))
	case float64:
		dest.SetFloat(v)
	default:
		return errors.New("not a number")
	}
	return nil
}

func getScalarArgParser(typ reflect.Type) (*argParser, bool) {
	parser, ok := scalarArgParsers[typ]
	return parser, ok
}
