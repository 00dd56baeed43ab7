// internal/models/collection.go
package models

type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}
