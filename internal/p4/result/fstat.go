package result

import (
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/record"
)

// Action is a file action as reported by fstat and reconcile.
type Action string

const (
	ActionNone       Action = ""
	ActionAdd        Action = "add"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionBranch     Action = "branch"
	ActionMoveAdd    Action = "move/add"
	ActionMoveDelete Action = "move/delete"
	ActionIntegrate  Action = "integrate"
	ActionImport     Action = "import"
	ActionPurge      Action = "purge"
	ActionArchive    Action = "archive"
)

var actions = []Action{
	ActionAdd, ActionEdit, ActionDelete, ActionBranch, ActionMoveAdd,
	ActionMoveDelete, ActionIntegrate, ActionImport, ActionPurge, ActionArchive,
}

// ParseAction maps s to a known Action, or ActionNone.
func ParseAction(s string) Action {
	s = strings.TrimSpace(s)
	for _, a := range actions {
		if strings.EqualFold(string(a), s) {
			return a
		}
	}
	return ActionNone
}

// FStatNode is one file reported by fstat.
type FStatNode struct{ *record.Record }

func (n FStatNode) ClientFile() string  { return n.String("clientFile", "") }
func (n FStatNode) DepotFile() string   { return n.String("depotFile", "") }
func (n FStatNode) MovedFile() string   { return n.String("movedFile", "") }
func (n FStatNode) Path() string        { return n.String("path", "") }
func (n FStatNode) HeadAction() Action  { return record.Enum(n.Record, "headAction", ActionNone, actions...) }
func (n FStatNode) HeadChange() int     { return n.Int("headChange", 0) }
func (n FStatNode) HeadRev() int        { return n.Int("headRev", 0) }
func (n FStatNode) HeadType() string    { return n.String("headType", "") }
func (n FStatNode) HeadTime() int64     { return n.Int64("headTime", 0) }
func (n FStatNode) HeadModTime() int64  { return n.Int64("headModTime", 0) }
func (n FStatNode) MovedRev() int       { return n.Int("movedRev", 0) }
func (n FStatNode) HaveRev() int        { return n.Int("haveRev", 0) }
func (n FStatNode) Desc() string        { return n.String("desc", "") }
func (n FStatNode) Digest() string      { return n.String("digest", "") }
func (n FStatNode) FileSize() int64     { return n.Int64("fileSize", 0) }
func (n FStatNode) Action() Action      { return record.Enum(n.Record, "action", ActionNone, actions...) }
func (n FStatNode) Type() string        { return n.String("type", "") }
func (n FStatNode) ActionOwner() string { return n.String("actionOwner", "") }
func (n FStatNode) Change() int         { return n.Int("change", 0) }
func (n FStatNode) Resolved() string    { return n.String("resolved", "") }
func (n FStatNode) Unresolved() string  { return n.String("unresolved", "") }

// Presence flags. The CLI emits these keys without a value.
func (n FStatNode) IsMapped() bool  { return n.Has("isMapped") }
func (n FStatNode) Shelved() bool   { return n.Has("shelved") }
func (n FStatNode) OtherOpen() bool { return n.Has("otherOpen") }
func (n FStatNode) OtherLock() bool { return n.Has("otherLock") }
func (n FStatNode) OurLock() bool   { return n.Has("ourLock") }

// InDepot reports whether the head revision exists and is not a delete.
func (n FStatNode) InDepot() bool {
	return n.DepotFile() != "" && n.HeadAction() != ActionDelete
}

// IsOpened reports whether the file is opened in the current workspace.
func (n FStatNode) IsOpened() bool {
	return n.Has("action")
}

// FStat is the typed view of "fstat".
type FStat struct {
	*ResultSet
	Nodes []FStatNode
}

func NewFStat(rs *ResultSet) *FStat {
	return &FStat{ResultSet: rs, Nodes: wrap(rs.Records, func(r *record.Record) FStatNode { return FStatNode{r} })}
}

// FindNode returns the node whose depot or client file equals path.
func (f *FStat) FindNode(path string) (FStatNode, bool) {
	return findNode(f.Nodes, path, func(n FStatNode) []string {
		return []string{n.DepotFile(), n.ClientFile()}
	})
}
