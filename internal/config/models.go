package config

// AccordionConfig is the whole configuration document supplied once per mount.
type AccordionConfig struct {
	DefaultLayer     *DefaultLayer  `yaml:"defaultLayer" toml:"defaultLayer"`
	Layers           []LayerConfig  `yaml:"layers" toml:"layers"`
	DefaultOpenItems []string       `yaml:"defaultOpenItems,omitempty" toml:"defaultOpenItems"`
	PinnedItems      []string       `yaml:"pinnedItems,omitempty" toml:"pinnedItems"`
	State            map[string]any `yaml:"state,omitempty" toml:"state"` // Host state seed, not part of the panel contract
}

// DefaultLayer holds the layout values used when a layer does not override them.
type DefaultLayer struct {
	MaxHeight            string `yaml:"maxHeight" toml:"maxHeight"`
	MarginLeft           int    `yaml:"marginLeft" toml:"marginLeft"`
	MarginRight          int    `yaml:"marginRight" toml:"marginRight"`
	BottomMargin         int    `yaml:"bottomMargin" toml:"bottomMargin"`
	LayerVerticalPadding int    `yaml:"layerVerticalPadding,omitempty" toml:"layerVerticalPadding"`
}

// LayerConfig describes one accordion row. Layout overrides are pointers so an
// explicit zero can be told apart from an absent field.
type LayerConfig struct {
	ID             string `yaml:"id" toml:"id"`
	Name           string `yaml:"name" toml:"name"`
	ComponentName  string `yaml:"componentName" toml:"componentName"`
	ComponentProps Props  `yaml:"componentProps,omitempty" toml:"-"`

	MaxHeight            *string `yaml:"maxHeight,omitempty" toml:"maxHeight"`
	MarginLeft           *int    `yaml:"marginLeft,omitempty" toml:"marginLeft"`
	MarginRight          *int    `yaml:"marginRight,omitempty" toml:"marginRight"`
	BottomMargin         *int    `yaml:"bottomMargin,omitempty" toml:"bottomMargin"`
	LayerVerticalPadding *int    `yaml:"layerVerticalPadding,omitempty" toml:"layerVerticalPadding"`
}

// LayerIDs returns the configured layer ids in render order.
func (c *AccordionConfig) LayerIDs() []string {
	ids := make([]string, 0, len(c.Layers))
	for _, l := range c.Layers {
		ids = append(ids, l.ID)
	}
	return ids
}

// Layer returns the layer with the given id.
func (c *AccordionConfig) Layer(id string) (LayerConfig, bool) {
	for _, l := range c.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return LayerConfig{}, false
}
