package dto

import (
	"encoding/json"
)

// CreateReviewRequest represents the public review form submission
type CreateReviewRequest struct {
	Name    string `json:"name"`
	Service string `json:"service"`
	Company string `json:"company"`
	Text    string `json:"text"`
}

// VerifyRequest represents the admin password check
type VerifyRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeleteRequest represents a delete-by-id body
type DeleteRequest struct {
	ID string `json:"id" binding:"required"`
}

// ContactRequest represents the contact form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SummarizeRequest represents a review condensing request
type SummarizeRequest struct {
	Text string `json:"text"`
}

// ReorderRequest represents an explicit reorder body
type ReorderRequest struct {
	Order []string `json:"order"`
}

// UpdateRequest - размеченное объединение двух форм тела обновления:
// перестановка {order: [...]} либо частичный патч {id, ...поля}.
// Дискриминант - наличие валидного массива order.
type UpdateRequest struct {
	Order  []string
	ID     string
	Fields map[string]any
}

// IsReorder сообщает, какая ветка объединения пришла.
func (r *UpdateRequest) IsReorder() bool {
	return r.Order != nil
}

// UnmarshalJSON разбирает тело один раз и раскладывает его по веткам.
func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if rawOrder, ok := raw["order"]; ok {
		var order []string
		if err := json.Unmarshal(rawOrder, &order); err == nil && order != nil {
			r.Order = order
			return nil
		}
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		var parsed any
		if err := json.Unmarshal(value, &parsed); err != nil {
			return err
		}
		if key == "id" {
			if s, ok := parsed.(string); ok {
				r.ID = s
			}
			continue
		}
		fields[key] = parsed
	}
	r.Fields = fields
	return nil
}
