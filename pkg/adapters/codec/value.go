// Package codec converts loosely typed input (decoded JSON, YAML or MCP
// arguments) into field values.
package codec

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/stepwise/pkg/domain"
)

// DecodeValue converts raw input into the value shape the field stores.
//
// Text fields accept strings and numbers. Checkboxes accept booleans and the
// strings "true"/"false". File fields accept an object {name, size,
// content_type} or a bare file name; multiple file fields accept a list of
// either.
func DecodeValue(field *domain.Field, raw any) (domain.Value, error) {
	switch {
	case field.Kind == domain.FieldCheckbox:
		b, err := decodeBool(raw)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: %q: %v", domain.ErrValueShape, field.Key, err)
		}
		return domain.BoolValue(b), nil

	case field.Kind == domain.FieldFile && field.Multiple:
		items, ok := raw.([]any)
		if !ok && raw != nil {
			return domain.Value{}, fmt.Errorf("%w: %q expects a list of files", domain.ErrValueShape, field.Key)
		}
		files := make([]domain.FileRef, 0, len(items))
		for _, item := range items {
			f, err := decodeFile(item)
			if err != nil {
				return domain.Value{}, fmt.Errorf("%w: %q: %v", domain.ErrValueShape, field.Key, err)
			}
			files = append(files, f)
		}
		return domain.FilesValue(files...), nil

	case field.Kind == domain.FieldFile:
		f, err := decodeFile(raw)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: %q: %v", domain.ErrValueShape, field.Key, err)
		}
		return domain.FileValue(f), nil

	default:
		s, err := decodeText(raw)
		if err != nil {
			return domain.Value{}, fmt.Errorf("%w: %q: %v", domain.ErrValueShape, field.Key, err)
		}
		return domain.TextValue(s), nil
	}
}

// ScalarValue converts a YAML/JSON scalar into a value, used for condition
// operands where no field kind is known yet.
func ScalarValue(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case bool:
		return domain.BoolValue(v), nil
	case nil:
		return domain.Value{}, fmt.Errorf("missing value")
	default:
		s, err := decodeText(raw)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.TextValue(s), nil
	}
}

func decodeText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected text, got %T", raw)
	}
}

func decodeBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", raw)
	}
}

func decodeFile(raw any) (domain.FileRef, error) {
	if name, ok := raw.(string); ok {
		return domain.FileRef{Name: name}, nil
	}
	var f domain.FileRef
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return f, err
	}
	if err := dec.Decode(raw); err != nil {
		return f, fmt.Errorf("invalid file reference: %w", err)
	}
	return f, nil
}
