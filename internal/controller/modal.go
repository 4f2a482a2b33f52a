package controller

// ModalKind says which dialog, if any, is open on a page.
type ModalKind int

const (
	NoModal ModalKind = iota
	Adding
	Editing
	ConfirmingDelete
)

func (k ModalKind) String() string {
	switch k {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	case ConfirmingDelete:
		return "confirming-delete"
	}
	return "none"
}

// Modal is the open dialog and the entity it acts on. Target is only
// meaningful for Editing and ConfirmingDelete; it is the zero value
// otherwise, so an edit target cannot outlive its dialog.
type Modal[T any] struct {
	Kind   ModalKind
	Target T
}

// Open reports whether any dialog is showing.
func (m Modal[T]) Open() bool {
	return m.Kind != NoModal
}

func adding[T any]() Modal[T] {
	return Modal[T]{Kind: Adding}
}

func editing[T any](target T) Modal[T] {
	return Modal[T]{Kind: Editing, Target: target}
}

func confirmingDelete[T any](target T) Modal[T] {
	return Modal[T]{Kind: ConfirmingDelete, Target: target}
}
