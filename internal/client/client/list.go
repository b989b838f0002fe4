package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

var errUnknownShape = errors.New("unexpected list shape")

// decodeList accepts a bare JSON array or an object carrying the array
// under one of keys (first present wins). Anything else, including an
// array with an undecodable element, yields an empty non-nil slice.
func decodeList[T any](ctx context.Context, log logging.Logger, body []byte, keys ...string) []T {
	items, err := parseList[T](body, keys)
	if err != nil {
		log.Warn(ctx, "list response treated as empty", "error", err)
		return []T{}
	}
	return items
}

func parseList[T any](body []byte, keys []string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errUnknownShape
	}

	raw := body
	if body[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, err
		}
		raw = nil
		for _, k := range keys {
			if v, ok := wrapped[k]; ok {
				raw = v
				break
			}
		}
		if raw == nil {
			return nil, errUnknownShape
		}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
