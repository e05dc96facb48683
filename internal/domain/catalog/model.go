package catalog

import "time"

// Category y Tag son entidades de referencia: identidad + nombre, sin más lógica.

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
