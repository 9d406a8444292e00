package toolbar

import (
	"errors"
	"fmt"
)

// Partition splits resolved actions into those shown directly on the bar
// and those moved to the overflow menu. Invisible actions are dropped.
// When anything overflows, one bar slot is given up to the overflow
// trigger.
func Partition(actions []Action, p Profile) (bar, overflow []Action) {
	visible := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.Visible.Visible() {
			visible = append(visible, a)
		}
	}

	limit := p.MaxVisibleButtons
	if limit <= 0 || len(visible) <= limit {
		return visible, nil
	}

	limit--
	return visible[:limit], visible[limit:]
}

var (
	ErrNoHandler     = errors.New("action has no handler")
	ErrUnknownOption = errors.New("unknown dropdown option")
)

// Invoke runs the action's callback. arg is the dropdown option id, the
// new color, or the new input value depending on the action kind, and is
// ignored for buttons and toggles. Callback errors are wrapped with the
// action id and a panic inside the callback is turned into an error.
func Invoke(a Action, arg string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s: %v", a.ID, r)
		}
	}()

	run := func(fn func() error) error {
		if err := fn(); err != nil {
			return fmt.Errorf("action %s: %w", a.ID, err)
		}
		return nil
	}

	switch a.Kind {
	case KindButton:
		if a.OnClick == nil {
			return fmt.Errorf("action %s: %w", a.ID, ErrNoHandler)
		}
		return run(a.OnClick)
	case KindToggle:
		if a.Toggle == nil || a.Toggle.OnToggle == nil {
			return fmt.Errorf("action %s: %w", a.ID, ErrNoHandler)
		}
		return run(a.Toggle.OnToggle)
	case KindDropdown:
		if a.Dropdown == nil {
			return fmt.Errorf("action %s: %w", a.ID, ErrNoHandler)
		}
		for _, o := range a.Dropdown.Options {
			if o.ID != arg {
				continue
			}
			if o.Disabled || o.OnSelect == nil {
				return fmt.Errorf("action %s option %s: %w", a.ID, arg, ErrNoHandler)
			}
			return run(o.OnSelect)
		}
		return fmt.Errorf("action %s option %q: %w", a.ID, arg, ErrUnknownOption)
	case KindColor:
		if a.Color == nil || a.Color.OnChange == nil {
			return fmt.Errorf("action %s: %w", a.ID, ErrNoHandler)
		}
		return run(func() error { return a.Color.OnChange(arg) })
	case KindInput:
		if a.Input == nil || a.Input.OnChange == nil {
			return fmt.Errorf("action %s: %w", a.ID, ErrNoHandler)
		}
		return run(func() error { return a.Input.OnChange(arg) })
	default:
		return fmt.Errorf("action %s: unknown kind %q", a.ID, a.Kind)
	}
}

// Find returns the action with the given id.
func Find(actions []Action, id string) (Action, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
