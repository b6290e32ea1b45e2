package mongoclient

import (
	"errors"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var ErrNotStruct = errors.New("selector source is not a struct")

// Selector turns the non-zero fields of a struct into an equality filter keyed by bson
// name. Pointers are dereferenced, inline structs are flattened and other nested
// structs become dotted paths.
func Selector(v interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(v))
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	slr := bson.M{}
	if err := collect(slr, "", val); err != nil {
		return nil, err
	}
	return slr, nil
}

func collect(slr bson.M, prefix string, val reflect.Value) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() || field.IsZero() {
			continue
		}

		tag, err := bsoncodec.DefaultStructTagParser(typ.Field(i))
		if err != nil {
			return err
		}
		if tag.Skip {
			continue
		}

		field = reflect.Indirect(field)
		if tag.Inline && field.Kind() == reflect.Struct {
			if err := collect(slr, prefix, field); err != nil {
				return err
			}
			continue
		}
		if field.Kind() == reflect.Struct && isPlainStruct(field.Type()) {
			if err := collect(slr, prefix+tag.Name+".", field); err != nil {
				return err
			}
			continue
		}
		slr[prefix+tag.Name] = field.Interface()
	}
	return nil
}

// isPlainStruct reports whether t should be walked rather than matched as a whole value.
// Types with their own bson encoding or no exported fields, like time.Time or
// primitive.Decimal128, are matched as a whole.
func isPlainStruct(t reflect.Type) bool {
	if t.PkgPath() == "time" {
		return false
	}
	switch reflect.New(t).Interface().(type) {
	case bson.Marshaler, bsoncodec.ValueMarshaler:
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath == "" {
			return true
		}
	}
	return false
}
