package models

// Категории работ. Список не закрыт на уровне хранилища,
// фронтенд использует эти значения для фильтрации.
const (
	CategoryAds    = "Ads"
	CategorySaaS   = "SaaS"
	CategoryOthers = "Others"
)

// Project представляет работу в портфолио студии. ID совпадает с ключом
// видеообъекта в хранилище.
type Project struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Client     string `json:"client"`
	Video      string `json:"video"`
	IsRecent   bool   `json:"isRecent"`
	IsFeatured bool   `json:"isFeatured"`
}

// RecordID возвращает идентификатор записи для коллекции.
func (p Project) RecordID() string {
	return p.ID
}
