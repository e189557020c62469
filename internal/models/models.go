package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Kind names the type of a document's root value.
type Kind string

const (
	KindObject Kind = "object"
	KindArray  Kind = "array"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
	KindNull   Kind = "null"
)

// Document is a parsed source file. Root holds the value exactly as decoded,
// numbers as json.Number so their literal text survives a round trip.
type Document struct {
	Root JSONValue
	Kind Kind
	// Size is the length in bytes of the source text.
	Size int
}
