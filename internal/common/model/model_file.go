package model

import "strings"

// File carries a path or URI, the MIME type of the payload and, when the
// payload is packaged with the record, the archive entry holding the bytes.
type File struct {
	Value       string `json:"value"`
	ContentType string `json:"contentType"`
	Attachment  string `json:"attachment,omitempty"`
}

// NewFile creates a File element.
func NewFile(idShort, value, contentType string) *Element {
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &File{Value: value, ContentType: contentType},
	}
}

// ModelType implements Payload.
func (p *File) ModelType() ModelType { return ModelTypeFile }

// HasValue implements Payload.
func (p *File) HasValue() bool { return strings.TrimSpace(p.Value) != "" }

func (p *File) clonePayload() Payload {
	cp := *p
	return &cp
}
