package model

// Folder groups todos for one owner. Ownership is by id only; a folder does
// not carry its todos.
type Folder struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID *int64 `json:"userId"`
}

// OwnedBy reports whether the folder belongs to userID.
func (f *Folder) OwnedBy(userID int64) bool {
	return f.UserID != nil && *f.UserID == userID
}
