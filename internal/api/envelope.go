package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is pagination metadata, present on some list envelopes.
type Page struct {
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// DecodeList normalizes any of the backend's list envelopes into out, which
// must be a pointer to a slice. Supported shapes: a bare array, {items},
// {content}, and any of those nested under {data}. Anything else decodes to
// an empty list, matching how every screen historically treated unknown
// shapes. Page metadata is returned when the envelope carries it.
func DecodeList(raw json.RawMessage, out any) (*Page, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}

	if inner, ok := obj["data"]; ok {
		return DecodeList(inner, out)
	}

	for _, key := range []string{"items", "content"} {
		if inner, ok := obj[key]; ok {
			if err := json.Unmarshal(inner, out); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
			page := &Page{}
			if err := json.Unmarshal(raw, page); err != nil {
				return nil, nil
			}
			return page, nil
		}
	}

	return nil, nil
}

// DecodeObject normalizes a single-resource envelope into out, unwrapping
// any number of {data:{...}} layers.
func DecodeObject(raw json.RawMessage, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if inner, ok := obj["data"]; ok && len(bytes.TrimSpace(inner)) > 0 && !bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
			return DecodeObject(inner, out)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	return nil
}
