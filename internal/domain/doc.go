package domain

import (
	"encoding/json"
	"time"
)

// Doc es un documento del editor, siempre propiedad de un usuario.
type Doc struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	ContentText string          `json:"content_text"`
	ContentJSON json.RawMessage `json:"content_json"`
	ContentHTML string          `json:"content_html"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DocSummary es la vista reducida usada por el listado y la busqueda.
type DocSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ContentText *string `json:"content_text,omitempty"`
}

// DocInput agrupa los campos editables de un documento.
type DocInput struct {
	Title       string
	ContentText string
	ContentJSON json.RawMessage
	ContentHTML string
}
