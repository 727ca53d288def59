package model

// Category groups todos by area (work, health, shopping, etc.). Name
// is unique per user by convention only; nothing enforces it.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID string `json:"userId"`
}
