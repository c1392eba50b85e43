// Package pageflow models the interaction state every admin page shares:
// which mode is active, the transient form values, and the two-step delete
// confirmation. It owns no store data and sends no requests; it only
// decides what the surface is allowed to do next.
package pageflow

// Mode is the page's current view.
type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "list"
	}
}

// Controller is one page's interaction state machine.
type Controller struct {
	mode      Mode
	form      *Form
	newForm   func() *Form
	editingID string

	// deleteTarget holds the armed identifier; empty means idle. The
	// confirmed identifier is only obtainable through ConfirmDelete, so a
	// destructive call cannot skip the arm step.
	deleteTarget string
}

// NewController starts in list mode. newForm builds a fresh form for the
// page's entity; it is invoked on every mode switch so no stale input
// leaks between modes.
func NewController(newForm func() *Form) *Controller {
	return &Controller{
		mode:    ModeList,
		form:    newForm(),
		newForm: newForm,
	}
}

func (c *Controller) Mode() Mode  { return c.mode }
func (c *Controller) Form() *Form { return c.form }

// EditingID returns the identifier targeted by edit mode.
func (c *Controller) EditingID() string { return c.editingID }

// SwitchTo changes mode and resets the transient form state.
func (c *Controller) SwitchTo(mode Mode) {
	c.mode = mode
	c.form = c.newForm()
	if mode != ModeEdit {
		c.editingID = ""
	}
}

// BeginEdit enters edit mode for one record, seeding the form with its
// current values.
func (c *Controller) BeginEdit(id string, current map[string]string) {
	c.SwitchTo(ModeEdit)
	c.editingID = id
	c.form.Seed(current)
}

// ArmDelete marks a record as the deletion target. Nothing is deleted yet.
func (c *Controller) ArmDelete(id string) {
	c.deleteTarget = id
}

// DisarmDelete cancels a pending confirmation.
func (c *Controller) DisarmDelete() {
	c.deleteTarget = ""
}

// DeleteTarget reports the armed identifier, if any.
func (c *Controller) DeleteTarget() (string, bool) {
	return c.deleteTarget, c.deleteTarget != ""
}

// ConfirmDelete hands out the armed identifier exactly once. ok is false
// when no target is armed, which is the signal that the confirmation flow
// was skipped and the delete must not run.
func (c *Controller) ConfirmDelete() (id string, ok bool) {
	if c.deleteTarget == "" {
		return "", false
	}
	id = c.deleteTarget
	c.deleteTarget = ""
	return id, true
}
