package widgets

import (
	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// CheckboxConfig describes a labeled checkbox.
type CheckboxConfig struct {
	Label   string
	Checked bool
	// OnChange is called with the new state after the user toggles the box.
	OnChange func(cb *Checkbox, checked bool)
}

// CheckboxOf returns an unchecked checkbox config.
func CheckboxOf(label string, onChange func(*Checkbox, bool)) CheckboxConfig {
	return CheckboxConfig{Label: label, OnChange: onChange}
}

// WithChecked returns a copy of the config with the given initial state.
func (c CheckboxConfig) WithChecked(checked bool) CheckboxConfig {
	c.Checked = checked
	return c
}

// Build creates the native checkbox.
func (c CheckboxConfig) Build(b *engine.Backend) (*Checkbox, error) {
	p := platform.CheckboxParams{Label: c.Label, Checked: c.Checked}
	cb, err := construct("widgets.CheckboxConfig.Build", b, platform.KindCheckbox,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateCheckbox(p) },
		func(e *Element) *Checkbox { return &Checkbox{Element: e} })
	if err != nil {
		return nil, err
	}
	if c.OnChange != nil {
		cb.setOnChange(c.OnChange)
	}
	return cb, nil
}

// Checkbox is the proxy for a native checkbox.
type Checkbox struct {
	*Element
}

// Checked returns the current state.
func (c *Checkbox) Checked() (bool, error) {
	if err := c.live("widgets.Checkbox.Checked"); err != nil {
		return false, err
	}
	return c.toolkit().CheckboxChecked(c.handle), nil
}

// SetChecked sets the state without notifying OnChange.
func (c *Checkbox) SetChecked(checked bool) error {
	if err := c.live("widgets.Checkbox.SetChecked"); err != nil {
		return err
	}
	c.toolkit().SetCheckboxChecked(c.handle, checked)
	return nil
}

// SetOnChange replaces the change handler. Nil removes it.
func (c *Checkbox) SetOnChange(fn func(*Checkbox, bool)) error {
	if err := c.live("widgets.Checkbox.SetOnChange"); err != nil {
		return err
	}
	if fn == nil {
		c.unlisten(platform.EventCheckChange)
		return nil
	}
	c.setOnChange(fn)
	return nil
}

func (c *Checkbox) setOnChange(fn func(*Checkbox, bool)) {
	c.listen(platform.EventCheckChange, func(ev platform.Event) { fn(c, ev.Checked) })
}
