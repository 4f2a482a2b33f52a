package api

import (
	"bytes"
	"encoding/json"

	"github.com/blackwell-systems/libractl/internal/library"
)

// Shape records which list form the gateway answered with.
type Shape int

const (
	// PlainList is a bare JSON array (or a {"books": [...]} wrapper).
	PlainList Shape = iota
	// PagedEnvelope is {"data": [...], "meta": {...}}.
	PagedEnvelope
)

func (s Shape) String() string {
	if s == PagedEnvelope {
		return "envelope"
	}
	return "plain"
}

// ListResult is a list response resolved at the client boundary. Meta is
// always populated: plain lists report a single page holding every item.
type ListResult[T any] struct {
	Shape Shape
	Items []T
	Meta  library.Pagination
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Meta  *library.Pagination `json:"meta"`
	Books json.RawMessage     `json:"books"`
}

// decodeList accepts a bare array, a {data, meta} envelope or a
// {books: [...]} wrapper. Anything else is ErrUnexpectedShape.
func decodeList[T any](data []byte, perPage int) (ListResult[T], error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ListResult[T]{}, ErrUnexpectedShape
	}

	switch data[0] {
	case '[':
		items, err := decodeItems[T](data)
		if err != nil {
			return ListResult[T]{}, err
		}
		return plainResult(items, perPage), nil

	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return ListResult[T]{}, err
		}
		if isArray(env.Data) {
			items, err := decodeItems[T](env.Data)
			if err != nil {
				return ListResult[T]{}, err
			}
			var meta library.Pagination
			if env.Meta != nil {
				meta = *env.Meta
			} else {
				meta.Total = len(items)
			}
			return ListResult[T]{Shape: PagedEnvelope, Items: items, Meta: meta.Normalize(perPage)}, nil
		}
		if isArray(env.Books) {
			items, err := decodeItems[T](env.Books)
			if err != nil {
				return ListResult[T]{}, err
			}
			return plainResult(items, perPage), nil
		}
	}
	return ListResult[T]{}, ErrUnexpectedShape
}

func decodeItems[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func plainResult[T any](items []T, perPage int) ListResult[T] {
	meta := library.Pagination{Total: len(items)}.Normalize(perPage)
	return ListResult[T]{Shape: PlainList, Items: items, Meta: meta}
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
