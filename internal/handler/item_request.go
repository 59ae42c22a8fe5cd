package handler

import (
	"bytes"
	"errors"
	"io"

	"itemtracker/internal/domain/model"

	"github.com/goccy/go-json"
	"gopkg.in/guregu/null.v3"
)

var jsonNull = []byte("null")

// decodePatch turns a PUT body into an ItemPatch, keeping track of which
// keys were sent. Keys that are not item columns are ignored.
func decodePatch(body io.Reader) (model.ItemPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, errors.New("invalid body")
	}
	if raw == nil {
		return nil, errors.New("body must be a JSON object")
	}

	patch := make(model.ItemPatch, len(raw))
	for key, val := range raw {
		isNull := bytes.Equal(bytes.TrimSpace(val), jsonNull)

		switch key {
		case model.ColName, model.ColStatus:
			if isNull {
				return nil, errors.New(key + " cannot be null")
			}
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return nil, errors.New(key + " must be a string")
			}
			patch[key] = s

		case model.ColIsFragile:
			if isNull {
				return nil, errors.New(key + " cannot be null")
			}
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return nil, errors.New(key + " must be a boolean")
			}
			patch[key] = b

		case model.ColDescription, model.ColLocation, model.ColCategory, model.ColImageURL:
			if isNull {
				patch[key] = null.String{}
				continue
			}
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return nil, errors.New(key + " must be a string or null")
			}
			patch[key] = null.StringFrom(s)
		}
	}

	return patch, nil
}
