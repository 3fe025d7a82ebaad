package store

// Ключи документов коллекций в бакете. Подчёркивание уводит их из листинга
// видеофайлов и от публичных URL.
const (
	ProjectsKey = "_projects.json"
	ReviewsKey  = "_reviews.json"
)
