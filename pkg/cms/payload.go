package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"sort"
)

// Attachment is a binary asset submitted alongside a create or update
// request, such as a service icon or a gallery photo.
type Attachment struct {
	// Field is the multipart form field the server expects the file under.
	Field    string
	Filename string
	Content  []byte
}

// Payload carries the user-entered values of a create or update form.
// Collections without binary assets send it as a JSON object; the others
// send it multipart-encoded with the attachments inlined.
type Payload struct {
	Fields map[string]any
	Files  []Attachment
}

func (p Payload) encodeJSON() ([]byte, string, error) {
	fields := p.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	return data, "application/json", err
}

func (p Payload) encodeMultipart() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// Deterministic field order keeps request logs and tests stable.
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, fmt.Sprint(p.Fields[name])); err != nil {
			return nil, "", err
		}
	}

	for _, file := range p.Files {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// encode picks the wire encoding for the payload.
func (p Payload) encode(multipartForm bool) ([]byte, string, error) {
	if multipartForm {
		return p.encodeMultipart()
	}
	return p.encodeJSON()
}
