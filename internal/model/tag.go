package model

type Tag struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
