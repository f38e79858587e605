package schemabuilder

import (
	"fmt"
	"reflect"
)

// Schema is a registry of declared types. Declarations are collected with
// Object, InputObject, Enum, Query and Mutation; a later Build pass turns
// them into executable graphql types.
//
// Each Schema is independent: declaring and building against separate Schema
// instances never share state, except for the process-wide scalar registry
// populated by RegisterScalar.
type Schema struct {
	objects     map[string]*Object
	objectOrder []string

	typeMap map[reflect.Type]*Object

	enumMappings map[reflect.Type]*EnumMapping
	enumOrder    []reflect.Type

	inputObjects map[reflect.Type]*InputObject

	nextEntity int
}

// EnumMapping is a representation of an enum that includes both the mapping
// and the reverse mapping.
type EnumMapping struct {
	Name        string
	Map         map[string]interface{}
	ReverseMap  map[interface{}]string
	Description string
}

// NewSchema creates a new, empty schema registry.
func NewSchema() *Schema {
	return &Schema{
		objects:      make(map[string]*Object),
		typeMap:      make(map[reflect.Type]*Object),
		enumMappings: make(map[reflect.Type]*EnumMapping),
		inputObjects: make(map[reflect.Type]*InputObject),
	}
}

// Object registers a struct as a GraphQL Object in the schema and returns its
// descriptor for field and federation declarations. The name overrides the
// struct's identifier everywhere the type is rendered. Registering the same
// struct again under the same name returns the existing descriptor.
func (s *Schema) Object(name string, typ interface{}, desc ...string) *Object {
	if len(desc) > 1 {
		panic("at most one description allowed for Object " + name)
	}

	goType := reflect.TypeOf(typ)
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	if prev, ok := s.objects[name]; ok {
		prevType := reflect.TypeOf(prev.Type)
		if prevType.Kind() == reflect.Ptr {
			prevType = prevType.Elem()
		}
		if prevType != goType {
			panic("duplicate object name " + name)
		}
		return prev
	}
	if prev, ok := s.typeMap[goType]; ok {
		panic(fmt.Sprintf("%s already registered as object %s", goType, prev.Name))
	}

	object := &Object{
		Name:        name,
		Type:        typ,
		entityIndex: -1,
		schema:      s,
	}
	if len(desc) == 1 {
		object.Description = desc[0]
	}
	s.objects[name] = object
	s.objectOrder = append(s.objectOrder, name)
	s.typeMap[goType] = object
	return object
}

// Enum registers an enumType in the schema. The val should be any arbitrary
// value of the enumType to be used for reflection, and the enumMap should be
// the corresponding map of the enums.
//
// For example a enum could be declared as follows:
//   type enumType int32
//   const (
//	  one   enumType = 1
//	  two   enumType = 2
//	  three enumType = 3
//   )
//
// Then the Enum can be registered as:
//   s.Enum(enumType(1), map[string]interface{}{
//     "one":   enumType(1),
//     "two":   enumType(2),
//     "three": enumType(3),
//   })
func (s *Schema) Enum(val interface{}, enumMap map[string]interface{}, desc ...string) {
	typ := reflect.TypeOf(val)
	if len(desc) > 1 {
		panic("at most one description allowed for Enum " + typ.Name())
	}
	if _, ok := s.enumMappings[typ]; ok {
		panic("duplicate enum " + typ.Name())
	}

	reverseMap := make(map[interface{}]string, len(enumMap))
	for name, value := range enumMap {
		valueTyp := reflect.TypeOf(value)
		if valueTyp != typ {
			panic(fmt.Sprintf("enum value %s of %s has type %s", name, typ.Name(), valueTyp))
		}
		reverseMap[value] = name
	}

	mapping := &EnumMapping{
		Name:       typ.Name(),
		Map:        enumMap,
		ReverseMap: reverseMap,
	}
	if len(desc) == 1 {
		mapping.Description = desc[0]
	}
	s.enumMappings[typ] = mapping
	s.enumOrder = append(s.enumOrder, typ)
}

// InputObject registers a struct as an input object which can be passed as an
// argument to a query or mutation. Fields are declared with FieldFunc fill
// functions on the returned descriptor.
func (s *Schema) InputObject(name string, typ interface{}, desc ...string) *InputObject {
	if len(desc) > 1 {
		panic("at most one description allowed for InputObject " + name)
	}

	goType := reflect.TypeOf(typ)
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}
	if prev, ok := s.inputObjects[goType]; ok {
		return prev
	}

	input := &InputObject{
		Name:   name,
		Type:   typ,
		Fields: make(map[string]interface{}),
	}
	if len(desc) == 1 {
		input.Description = desc[0]
	}
	s.inputObjects[goType] = input
	return input
}

// query and mutation are the marker types backing the root objects.
type query struct{}
type mutation struct{}

// Query returns an Object struct that we can use to register all the top
// level graphql query functions on.
func (s *Schema) Query() *Object {
	return s.Object("Query", query{})
}

// Mutation returns an Object struct that we can use to register all the top
// level graphql mutation functions on.
func (s *Schema) Mutation() *Object {
	return s.Object("Mutation", mutation{})
}
