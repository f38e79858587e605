package schemabuilder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"time"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/timestamp"

	"go.appointy.com/subgraph/jerrors"
)

// Object represents a Go type and a set of field functions to be converted
// into an Object in a GraphQL schema, together with any federation metadata
// attached to it.
type Object struct {
	Name        string // Optional, defaults to Type's name.
	Description string
	Type        interface{}
	Methods     Methods

	// fieldOrder records field declaration order; building and rendering
	// follow it.
	fieldOrder []string

	// Federation metadata, keyed by declared (pre-resolution) field names.
	keys     []string
	extended bool
	external map[string]bool
	requires map[string]string
	provides map[string]string

	entityIndex int
	schema      *Schema

	refResolver ReferenceResolver
}

// ReferenceResolver resolves an entity representation received through the
// federation _entities field into a value of the object's Go type. The
// representation carries __typename plus any subset of the type's fields.
type ReferenceResolver func(ctx context.Context, representation map[string]interface{}) (interface{}, error)

// A Methods map represents the set of methods exposed on an Object.
type Methods map[string]*method

type method struct {
	MarkedNonNullable bool
	Fn                interface{}
	Description       string
}

// FieldFuncOption tweaks a single FieldFunc registration.
type FieldFuncOption func(*method)

// NonNullable marks the field type as non-null in the built schema. Field
// types default to nullable.
var NonNullable FieldFuncOption = func(m *method) { m.MarkedNonNullable = true }

// FieldDesc sets the description of the field for introspection.
func FieldDesc(desc string) FieldFuncOption {
	return func(m *method) { m.Description = desc }
}

// FieldFunc exposes a field on an object. The function f can take a number of
// optional arguments:
// func([ctx context.Context], [o *Type], [args struct {}]) (Result[, error])
//
// For example, for an object of type User, a fullName field might take just an
// instance of the object:
//    user.FieldFunc("fullName", func(u *User) string {
//       return u.FirstName + " " + u.LastName
//    })
//
// An addUser mutation field might take both a context and arguments:
//    mutation.FieldFunc("addUser", func(ctx context.Context, args struct{
//        FirstName string
//        LastName  string
//    }) (int, error) {
//        userID, err := db.AddUser(ctx, args.FirstName, args.LastName)
//        return userID, err
//    })
//
// The name is the declared field name, spelled exactly as it should appear
// pre-resolution; the build pass may re-case it (see AutoCamelCase).
func (s *Object) FieldFunc(name string, f interface{}, opts ...FieldFuncOption) {
	if s.Methods == nil {
		s.Methods = make(Methods)
	}

	m := &method{Fn: f}
	for _, opt := range opts {
		opt(m)
	}

	if _, ok := s.Methods[name]; ok {
		panic("duplicate method " + name + " on " + s.Name)
	}
	s.Methods[name] = m
	s.fieldOrder = append(s.fieldOrder, name)
}

// Key declares the object as a federation entity identified by the given
// field-selection expression. Fields are named by their declared spelling and
// separated by spaces for composite keys, e.g. "id" or "org_id id".
//
// Declaring a key twice with a different expression, or on top of Extend,
// panics with jerrors.DuplicateAnnotation. Repeating an identical declaration
// is a no-op.
func (s *Object) Key(fields string) {
	if s.extended {
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Annotation: "key"})
	}
	if s.keys != nil {
		if len(s.keys) == 1 && s.keys[0] == fields {
			return
		}
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Annotation: "key"})
	}
	s.keys = []string{fields}
	s.markEntity()
}

// Extend declares the object as an extension of an entity owned by another
// service, keyed by the given field-selection expression. The key fields must
// be declared on this object as well, typically marked External.
func (s *Object) Extend(fields string) {
	if s.extended {
		if len(s.keys) == 1 && s.keys[0] == fields {
			return
		}
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Annotation: "extend"})
	}
	if s.keys != nil {
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Annotation: "extend"})
	}
	s.extended = true
	s.keys = []string{fields}
	s.markEntity()
}

// External marks a declared field as owned by another service. The field is
// rendered in the service SDL with an @external suffix.
func (s *Object) External(field string) {
	if s.external == nil {
		s.external = make(map[string]bool)
	}
	s.external[field] = true
}

// Requires records the fields of the parent entity, owned by other services,
// that this field's resolver depends on.
func (s *Object) Requires(field, fields string) {
	if prev, ok := s.requires[field]; ok {
		if prev == fields {
			return
		}
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Field: field, Annotation: "requires"})
	}
	if _, ok := s.provides[field]; ok {
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Field: field, Annotation: "requires"})
	}
	if s.requires == nil {
		s.requires = make(map[string]string)
	}
	s.requires[field] = fields
}

// Provides records the fields of the referenced entity that this service can
// resolve locally, sparing the gateway a round trip.
func (s *Object) Provides(field, fields string) {
	if prev, ok := s.provides[field]; ok {
		if prev == fields {
			return
		}
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Field: field, Annotation: "provides"})
	}
	if _, ok := s.requires[field]; ok {
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Field: field, Annotation: "provides"})
	}
	if s.provides == nil {
		s.provides = make(map[string]string)
	}
	s.provides[field] = fields
}

// ResolveReference installs a resolver used by the federation _entities field
// to turn a representation into a value of this type. Without it, entity
// values are constructed by filling the matching struct fields from the
// representation.
func (s *Object) ResolveReference(f ReferenceResolver) {
	if s.refResolver != nil {
		panic(&jerrors.DuplicateAnnotation{Type: s.Name, Annotation: "resolveReference"})
	}
	s.refResolver = f
}

func (s *Object) markEntity() {
	if s.entityIndex < 0 && s.schema != nil {
		s.entityIndex = s.schema.nextEntity
		s.schema.nextEntity++
	}
}

// InputObject represents the input objects passed in queries and mutations.
type InputObject struct {
	Name        string
	Type        interface{}
	Fields      map[string]interface{}
	Description string
}

// FieldFunc is used to expose the fields of an input object and determine the
// method to fill it:
// type ServiceProvider struct {
// 	Id        string
// 	FirstName string
// }
// inputObj := schema.InputObject("serviceProvider", ServiceProvider{})
// inputObj.FieldFunc("id", func(target *ServiceProvider, source *schemabuilder.ID) {
// 	target.Id = source.Value
// })
// The target argument of the function must be a pointer.
func (io *InputObject) FieldFunc(name string, function interface{}) {
	funcTyp := reflect.TypeOf(function)

	if funcTyp.Kind() != reflect.Func || funcTyp.NumIn() != 2 {
		panic("can not register field " + name + " on " + io.Name + ": function must take a target pointer and a source value")
	}

	if funcTyp.In(0).Kind() != reflect.Ptr {
		panic("can not register field " + name + " on " + io.Name + ": the first argument of the function must be a pointer")
	}

	if funcTyp.NumOut() > 1 {
		panic("can not register field " + name + " on " + io.Name + ": at most one return value allowed")
	}

	if _, ok := io.Fields[name]; ok {
		panic("duplicate input field " + name + " on " + io.Name)
	}
	io.Fields[name] = function
}

// Union is a special marker struct that can be embedded into to denote
// that a type should be treated as a union type by the schemabuilder.
//
// For example, to denote that a return value that may be a *Asset or
// *Vehicle might look like:
//   type GatewayUnion struct {
//     schemabuilder.Union
//     *Asset
//     *Vehicle
//   }
//
// Fields returning a union type should expect to return this type as a
// one-hot struct, i.e. only Asset or Vehicle should be specified, but not both.
type Union struct{}

var unionType = reflect.TypeOf(Union{})

// UnmarshalFunc is used to unmarshal scalar value from JSON
type UnmarshalFunc func(value interface{}, dest reflect.Value) error

// RegisterScalar is used to register custom scalars.
//
// For example, to register a custom UUID type,
// type UUID struct {
// 		Value string
// }
//
// Implement JSON Marshalling
// func (u UUID) MarshalJSON() ([]byte, error) {
//  return strconv.AppendQuote(nil, u.Value), nil
// }
//
// Register unmarshal func
// func init() {
//	typ := reflect.TypeOf((*UUID)(nil)).Elem()
//	if err := schemabuilder.RegisterScalar(typ, "UUID", func(value interface{}, d reflect.Value) error {
//		v, ok := value.(string)
//		if !ok {
//			return errors.New("not a string type")
//		}
//
//		d.Field(0).SetString(v)
//		return nil
//	}); err != nil {
//		panic(err)
//	}
//}
func RegisterScalar(typ reflect.Type, name string, uf UnmarshalFunc) error {
	if typ.Kind() == reflect.Ptr {
		return errors.New("type should not be of pointer type")
	}

	if uf == nil {
		// Slow fail safe to avoid reflection code by package users
		if !reflect.PtrTo(typ).Implements(reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()) {
			return errors.New("either UnmarshalFunc should be provided or the provided type should implement json.Unmarshaler interface")
		}

		f, _ := reflect.PtrTo(typ).MethodByName("UnmarshalJSON")

		uf = func(value interface{}, dest reflect.Value) error {
			var x interface{}
			switch v := value.(type) {
			case []byte:
				x = v
			case string:
				x = []byte(strconv.Quote(v))
			case float64:
				x = []byte(strconv.FormatFloat(v, 'g', -1, 64))
			case int64:
				x = []byte(strconv.FormatInt(v, 10))
			case bool:
				if v {
					x = []byte{'t', 'r', 'u', 'e'}
				} else {
					x = []byte{'f', 'a', 'l', 's', 'e'}
				}
			default:
				return errors.New("unknown type")
			}

			if err := f.Func.Call([]reflect.Value{dest.Addr(), reflect.ValueOf(x)})[0].Interface(); err != nil {
				return err.(error)
			}

			return nil
		}
	}

	scalars[typ] = name
	scalarArgParsers[typ] = &argParser{
		FromJSON: uf,
		Type:     typ,
	}

	return nil
}

// ID is the graphql ID scalar
type ID struct {
	Value string
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (id ID) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, id.Value), nil
}

// isScalarType checks whether a reflect.Type is scalar or not
func isScalarType(t reflect.Type) bool {
	_, ok := scalars[t]
	return ok
}

//Timestamp handles the time
type Timestamp timestamp.Timestamp

// MarshalJSON implements JSON Marshalling used to generate the output
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, time.Unix(t.Seconds, int64(t.Nanos)).UTC().Format(time.RFC3339)), nil
}

//Map handles maps
type Map struct {
	Value string
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (m Map) MarshalJSON() ([]byte, error) {
	v := base64.StdEncoding.EncodeToString([]byte(m.Value))
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return d, nil
}

//Duration handles the duration
type Duration duration.Duration

// MarshalJSON implements JSON Marshalling used to generate the output
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(d.Seconds))), nil
}

//Bytes handles raw byte payloads
type Bytes struct {
	Value []byte
}

// MarshalJSON implements JSON Marshalling used to generate the output
func (b Bytes) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, err
	}
	return data, nil
}
