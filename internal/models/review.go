package models

// Лимиты полей отзыва. Текст обрезается при создании, не отклоняется.
const (
	MaxReviewNameLength    = 80
	MaxReviewCompanyLength = 80
	MaxReviewTextLength    = 120
)

// CreatedAtLayout - формат даты создания отзыва (только дата, без времени).
const CreatedAtLayout = "2006-01-02"

// Review представляет отзыв клиента студии.
type Review struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Service   string `json:"service"`
	Company   string `json:"company"`
	Text      string `json:"text"`
	Featured  bool   `json:"featured"`
	CreatedAt string `json:"createdAt"`
}

// RecordID возвращает идентификатор записи для коллекции.
func (r Review) RecordID() string {
	return r.ID
}
