package entities

import "time"

type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeSelect FieldType = "select"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect:
		return true
	}
	return false
}

type MetadataDefinition struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FieldType FieldType `json:"field_type"`
	Visible   bool      `json:"visible"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}
