package toolbar

// Layout is the direction toolbar buttons flow in.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
)

// Profile configures the toolbar for one device class.
type Profile struct {
	MaxVisibleButtons int    `json:"maxVisibleButtons"`
	ButtonSize        int    `json:"buttonSize"`
	Layout            Layout `json:"layout"`
	Spacing           int    `json:"spacing"`
}

// Config holds the desktop and mobile profiles.
type Config struct {
	Desktop Profile `json:"desktop"`
	Mobile  Profile `json:"mobile"`
}

// DefaultConfig returns the stock profiles.
func DefaultConfig() Config {
	return Config{
		Desktop: Profile{MaxVisibleButtons: 8, ButtonSize: 32, Layout: LayoutHorizontal, Spacing: 4},
		Mobile:  Profile{MaxVisibleButtons: 6, ButtonSize: 44, Layout: LayoutHorizontal, Spacing: 8},
	}
}

// ProfilePatch is a partial Profile; nil fields are left unchanged.
type ProfilePatch struct {
	MaxVisibleButtons *int    `json:"maxVisibleButtons,omitempty"`
	ButtonSize        *int    `json:"buttonSize,omitempty"`
	Layout            *Layout `json:"layout,omitempty"`
	Spacing           *int    `json:"spacing,omitempty"`
}

// ConfigPatch is a partial Config.
type ConfigPatch struct {
	Desktop *ProfilePatch `json:"desktop,omitempty"`
	Mobile  *ProfilePatch `json:"mobile,omitempty"`
}

// Merge applies p to c one profile at a time and returns the result.
func (c Config) Merge(p ConfigPatch) Config {
	c.Desktop = c.Desktop.merge(p.Desktop)
	c.Mobile = c.Mobile.merge(p.Mobile)
	return c
}

func (pr Profile) merge(p *ProfilePatch) Profile {
	if p == nil {
		return pr
	}
	if p.MaxVisibleButtons != nil {
		pr.MaxVisibleButtons = *p.MaxVisibleButtons
	}
	if p.ButtonSize != nil {
		pr.ButtonSize = *p.ButtonSize
	}
	if p.Layout != nil {
		pr.Layout = *p.Layout
	}
	if p.Spacing != nil {
		pr.Spacing = *p.Spacing
	}
	return pr
}

// Profile returns the profile for the device class.
func (c Config) Profile(mobile bool) Profile {
	if mobile {
		return c.Mobile
	}
	return c.Desktop
}
