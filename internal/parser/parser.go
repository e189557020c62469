package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/fixturegen/internal/errors" // Custom errors package
	"github.com/mcncl/fixturegen/internal/models"
)

// Parse decodes exactly one JSON value from reader into a Document
func Parse(reader io.Reader) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes exactly one JSON value from data into a Document
func ParseBytes(data []byte) (models.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Keep number literals intact

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		return models.Document{}, syntaxFailure(data, err)
	}

	// Anything other than whitespace after the first value is rejected.
	var trailingValue interface{}
	if err := decoder.Decode(&trailingValue); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return models.Document{}, syntaxFailure(data, err)
		}
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	rootValue = normalizeJSONValue(rootValue)
	return models.Document{
		Root: rootValue,
		Kind: KindOf(rootValue),
		Size: len(data),
	}, nil
}

// ParseFile reads and decodes the JSON file at filePath
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}

	doc, err := ParseBytes(data)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.Message = fmt.Sprintf("%s: %s", filePath, appErr.Message)
		}
		return models.Document{}, err
	}
	return doc, nil
}

// KindOf reports the JSON kind of a decoded value
func KindOf(val models.JSONValue) models.Kind {
	switch val.(type) {
	case models.JSONObject, map[string]interface{}:
		return models.KindObject
	case models.JSONArray, []interface{}:
		return models.KindArray
	case string:
		return models.KindString
	case json.Number, float64:
		return models.KindNumber
	case bool:
		return models.KindBool
	default:
		return models.KindNull
	}
}

// syntaxFailure turns a decoder error into a parsing error with a position
func syntaxFailure(data []byte, err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		line, col := position(data, syntaxError.Offset)
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at line %d, column %d (offset %d): %s", line, col, syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// position converts a byte offset into a 1-based line and column
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 1 {
		return 1, 1
	}
	// The decoder reports the offset just past the offending byte.
	prefix := data[:offset-1]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

// normalizeJSONValue converts raw JSON types into our model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v
	}
}
