// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const (
	DefaultFieldName        = "UnknownName"
	DefaultFieldType        = "double"
	DefaultFieldDescription = "No description available."
)

// DecodeDataStructure decodes a data-structure field list. A malformed list
// does not fail: it is recorded on the returned value instead.
func DecodeDataStructure(raw string) DataStructure {
	if strings.TrimSpace(raw) == "" {
		return DataStructure{}
	}
	records, err := decodeObjectList(raw, []string{"name", "type", "description"})
	if err != nil {
		return DataStructure{Declared: true, Err: err}
	}
	fields := make([]Field, 0, len(records))
	for _, rec := range records {
		fields = append(fields, Field{
			Name:        valueOr(rec["name"], DefaultFieldName),
			Type:        valueOr(rec["type"], DefaultFieldType),
			Description: valueOr(rec["description"], DefaultFieldDescription),
		})
	}
	return DataStructure{Declared: true, Fields: fields}
}

// DecodeParameters decodes a function parameter list. Every entry needs a
// name and a type.
func DecodeParameters(raw string) ([]Field, error) {
	records, err := decodeObjectList(raw, []string{"name", "type", "description"})
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(records))
	for i, rec := range records {
		if rec["name"] == "" || rec["type"] == "" {
			return nil, fmt.Errorf("%w: element %d needs both name and type", ErrMalformedList, i)
		}
		fields = append(fields, Field{Name: rec["name"], Type: rec["type"], Description: rec["description"]})
	}
	return fields, nil
}

// DecodeModes decodes an operation-mode list. Every entry needs a code and a
// name.
func DecodeModes(raw string) ([]Mode, error) {
	records, err := decodeObjectList(raw, []string{"code", "name", "description"})
	if err != nil {
		return nil, err
	}
	modes := make([]Mode, 0, len(records))
	for i, rec := range records {
		if rec["code"] == "" || rec["name"] == "" {
			return nil, fmt.Errorf("%w: element %d needs both code and name", ErrMalformedList, i)
		}
		modes = append(modes, Mode{Code: rec["code"], Name: rec["name"], Description: rec["description"]})
	}
	return modes, nil
}

// SplitList splits a semicolon-separated annotation list. The literal "[]"
// stands for an empty list.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// decodeObjectList reads a JSON array of objects and flattens the requested
// attributes of each element to strings. Missing and null attributes are
// left out of the element's map.
func decodeObjectList(raw string, attrs []string) ([]map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	buf := []byte(raw)

	ty, err := ctyjson.ImpliedType(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%w: expected a list, got %s", ErrMalformedList, ty.FriendlyName())
	}
	val, err := ctyjson.Unmarshal(buf, ty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedList, err)
	}

	var records []map[string]string
	for i, it := 0, val.ElementIterator(); it.Next(); i++ {
		_, ev := it.Element()
		if ev.IsNull() || !ev.Type().IsObjectType() {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedList, i)
		}
		rec := make(map[string]string, len(attrs))
		for _, attr := range attrs {
			if !ev.Type().HasAttribute(attr) {
				continue
			}
			av := ev.GetAttr(attr)
			if av.IsNull() {
				continue
			}
			sv, err := convert.Convert(av, cty.String)
			if err != nil {
				return nil, fmt.Errorf("%w: element %d attribute %q: %v", ErrMalformedList, i, attr, err)
			}
			rec[attr] = sv.AsString()
		}
		records = append(records, rec)
	}
	return records, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
