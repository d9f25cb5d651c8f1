package todo

import "github.com/shouta256/todo-next-spring/internal/model"

// Scope picks which of an owner's todos List returns. The zero value is
// Unassigned.
type Scope struct {
	scope    model.TodoScope
	folderID int64
}

// All selects every todo of the owner.
func All() Scope {
	return Scope{scope: model.ScopeAll}
}

// InFolder selects the owner's todos filed under folderID.
func InFolder(folderID int64) Scope {
	return Scope{scope: model.ScopeFolder, folderID: folderID}
}

// Unassigned selects the owner's todos with no folder.
func Unassigned() Scope {
	return Scope{scope: model.ScopeUnassigned}
}

// ScopeFor resolves list parameters: all wins over a folder id, and with
// neither the unassigned todos are listed.
func ScopeFor(all bool, folderID *int64) Scope {
	switch {
	case all:
		return All()
	case folderID != nil:
		return InFolder(*folderID)
	default:
		return Unassigned()
	}
}

func (s Scope) query(ownerID int64) model.TodoQuery {
	return model.TodoQuery{OwnerID: ownerID, Scope: s.scope, FolderID: s.folderID}
}
