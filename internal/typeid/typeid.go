package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser     = "user"
	PrefixDocument = "doc"
	PrefixPath     = "path"
	PrefixSubPath  = "sub"
	PrefixText     = "text"
	PrefixImage    = "img"
	PrefixUse      = "use"
	PrefixGroup    = "grp"
	PrefixGradient = "grad"
	PrefixStop     = "stop"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewDocumentID() string { return New(PrefixDocument) }
func NewPathID() string     { return New(PrefixPath) }
func NewSubPathID() string  { return New(PrefixSubPath) }
func NewTextID() string     { return New(PrefixText) }
func NewImageID() string    { return New(PrefixImage) }
func NewUseID() string      { return New(PrefixUse) }
func NewGroupID() string    { return New(PrefixGroup) }
func NewGradientID() string { return New(PrefixGradient) }
func NewStopID() string     { return New(PrefixStop) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// Prefix returns the type prefix of id, or "" when id is not a typeid.
func Prefix(id string) string {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return ""
	}
	return parsed.Prefix()
}
