// Package toolbar implements the floating contextual toolbar: the action
// types plugins contribute, the manager that resolves them against the
// current selection, and the presentation helpers that lay them out.
package toolbar

// Kind is the control an action renders as.
type Kind string

const (
	KindButton   Kind = "button"
	KindToggle   Kind = "toggle"
	KindDropdown Kind = "dropdown"
	KindColor    Kind = "color"
	KindInput    Kind = "input"
)

// InputType is the value type of an input action.
type InputType string

const (
	InputNumber InputType = "number"
	InputText   InputType = "text"
)

// Action is one user-invokable contextual command. Actions are built at
// resolution time and thrown away on the next selection change.
type Action struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Kind    Kind   `json:"type"`

	// Priority orders actions; higher is shown earlier.
	Priority    int        `json:"priority,omitempty"`
	Destructive bool       `json:"destructive,omitempty"`
	Disabled    bool       `json:"disabled,omitempty"`
	Visible     Visibility `json:"-"`

	OnClick  func() error    `json:"-"`
	Toggle   *ToggleConfig   `json:"toggle,omitempty"`
	Dropdown *DropdownConfig `json:"dropdown,omitempty"`
	Color    *ColorConfig    `json:"color,omitempty"`
	Input    *InputConfig    `json:"input,omitempty"`
}

type ToggleConfig struct {
	IsActive func() bool  `json:"-"`
	OnToggle func() error `json:"-"`
}

type DropdownConfig struct {
	Options []DropdownOption `json:"options"`
}

type DropdownOption struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Icon     string       `json:"icon,omitempty"`
	Disabled bool         `json:"disabled,omitempty"`
	OnSelect func() error `json:"-"`
}

type ColorConfig struct {
	Current  string             `json:"current"`
	OnChange func(string) error `json:"-"`
}

type InputConfig struct {
	Value    string             `json:"value"`
	Type     InputType          `json:"valueType"`
	Min      *float64           `json:"min,omitempty"`
	Max      *float64           `json:"max,omitempty"`
	OnChange func(string) error `json:"-"`
}

// Visibility is either a fixed flag or a predicate evaluated when the
// toolbar renders. The zero value is visible.
type Visibility struct {
	fn    func() bool
	fixed *bool
}

// Always returns a Visibility with a fixed value.
func Always(v bool) Visibility {
	return Visibility{fixed: &v}
}

// Computed returns a Visibility evaluated lazily by fn.
func Computed(fn func() bool) Visibility {
	return Visibility{fn: fn}
}

// Visible evaluates the visibility now.
func (v Visibility) Visible() bool {
	switch {
	case v.fn != nil:
		return v.fn()
	case v.fixed != nil:
		return *v.fixed
	default:
		return true
	}
}

// IsActive reports the current state of a toggle action.
func (a Action) IsActive() bool {
	return a.Toggle != nil && a.Toggle.IsActive != nil && a.Toggle.IsActive()
}
