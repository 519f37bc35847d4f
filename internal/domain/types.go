package domain

import "time"

// Folder is a node in a user's folder tree. Parent is nil exactly for a
// root-level folder. The server owns the tree shape; the client never
// validates it.
type Folder struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	OwnerID string  `json:"owner"`
	Parent  *string `json:"parent"`
}

// Image is always a leaf. It belongs to exactly one folder, or to the root
// when Parent is nil. Binary content is fetched on demand by ID and is never
// held on the entity.
type Image struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner"`
	Parent    *string   `json:"parent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
