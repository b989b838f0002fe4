package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const jpegDataURLPrefix = "data:image/jpeg;base64,"

// ImageRecord is the wire form of a gallery image.
type ImageRecord struct {
	ID      string `json:"_id,omitempty"`
	Content string `json:"content"`
}

func (r *ImageRecord) UnmarshalJSON(b []byte) error {
	type plain ImageRecord
	aux := struct {
		*plain
		MongoID flexString `json:"_id"`
		PlainID flexString `json:"id"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.ID = firstID(aux.MongoID, aux.PlainID)
	return nil
}

// ImageAsset is one cached gallery entry. Source is always a data URL.
// Provisional assets carry a locally generated ID because the server did
// not acknowledge one; they cannot be deleted until the next reload.
type ImageAsset struct {
	ID          string
	Source      string
	Provisional bool
}

// DataURL renders base64 content as a data URL. Content that already is a
// data URL is returned unchanged; anything else is assumed to be JPEG.
func DataURL(content string) string {
	if content == "" || strings.HasPrefix(content, "data:") {
		return content
	}
	return jpegDataURLPrefix + content
}

var ErrNotDataURL = errors.New("not a base64 data URL")

// DecodeDataURL returns the bytes and media type carried by a base64 data URL.
func DecodeDataURL(src string) (data []byte, mediaType string, err error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", ErrNotDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, strings.TrimSuffix(meta, ";base64"), nil
}
