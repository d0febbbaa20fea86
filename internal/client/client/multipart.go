package client

import (
	"bytes"
	"mime/multipart"
	"strconv"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
)

type formField struct {
	name, value string
}

type formFile struct {
	name string
	file models.Attachment
}

// Multipart collects form fields and files for image-carrying requests.
// The body is encoded once per attempt so retried requests resend it intact.
type Multipart struct {
	fields []formField
	files  []formFile
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field adds a text field, even when value is empty.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, formField{name: name, value: value})
	return m
}

// OptionalField adds a text field only when value is not empty.
func (m *Multipart) OptionalField(name, value string) *Multipart {
	if value == "" {
		return m
	}
	return m.Field(name, value)
}

// OptionalInt adds an integer field only when v is positive.
func (m *Multipart) OptionalInt(name string, v int) *Multipart {
	if v <= 0 {
		return m
	}
	return m.Field(name, strconv.Itoa(v))
}

// File adds a file part. A nil attachment is skipped.
func (m *Multipart) File(name string, a *models.Attachment) *Multipart {
	if a == nil || len(a.Data) == 0 {
		return m
	}
	m.files = append(m.files, formFile{name: name, file: *a})
	return m
}

func (m *Multipart) encode() (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", nil, err
		}
	}
	for _, f := range m.files {
		name := f.file.FileName
		if name == "" {
			name = f.name
		}
		part, err := w.CreateFormFile(f.name, name)
		if err != nil {
			return "", nil, err
		}
		if _, err := part.Write(f.file.Data); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}
