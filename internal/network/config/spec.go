package config

// NetworkConfig describes a test network.
type NetworkConfig struct {
	// Settings is optional in the file. A provider override creates it.
	Settings   *Settings   `koanf:"settings" json:"settings,omitempty"`
	Relaychain Relaychain  `koanf:"relaychain" json:"relaychain"`
	Parachains []Parachain `koanf:"parachains" json:"parachains,omitempty"`

	// BasePath is the directory of the file the config was read from.
	BasePath string `koanf:"-" json:"-"`
}

// Settings holds network-wide options.
type Settings struct {
	Provider string `koanf:"provider" json:"provider"`
	// Timeout is the global network timeout in seconds.
	Timeout int `koanf:"timeout" json:"timeout"`
}

// Relaychain describes the relay chain and its nodes.
type Relaychain struct {
	Chain          string   `koanf:"chain" json:"chain"`
	DefaultImage   string   `koanf:"default_image" json:"default_image"`
	DefaultCommand string   `koanf:"default_command" json:"default_command"`
	DefaultArgs    []string `koanf:"default_args" json:"default_args"`
	Nodes          []Node   `koanf:"nodes" json:"nodes"`
}

// Parachain describes a parachain and its collators.
type Parachain struct {
	ID        int    `koanf:"id" json:"id"`
	Chain     string `koanf:"chain" json:"chain"`
	Collators []Node `koanf:"collators" json:"collators"`
}

// Node describes a single node process.
type Node struct {
	Name      string   `koanf:"name" json:"name"`
	Image     string   `koanf:"image" json:"image"`
	Command   string   `koanf:"command" json:"command"`
	Args      []string `koanf:"args" json:"args"`
	Validator bool     `koanf:"validator" json:"validator"`
}

// Provider returns the configured provider, or "" when no settings exist.
func (c *NetworkConfig) Provider() string {
	if c.Settings == nil {
		return ""
	}
	return c.Settings.Provider
}

// SetProvider overrides the provider, creating settings with the default
// global timeout when the file had none.
func (c *NetworkConfig) SetProvider(provider string) {
	if c.Settings == nil {
		c.Settings = DefaultSettings(provider)
		return
	}
	c.Settings.Provider = provider
}

// Nodes returns every node of the network, relay chain first, with
// relay chain defaults applied.
func (c *NetworkConfig) Nodes() []Node {
	nodes := make([]Node, 0, len(c.Relaychain.Nodes))
	for _, n := range c.Relaychain.Nodes {
		nodes = append(nodes, c.Relaychain.withDefaults(n))
	}
	for _, p := range c.Parachains {
		nodes = append(nodes, p.Collators...)
	}
	return nodes
}

func (r Relaychain) withDefaults(n Node) Node {
	if n.Image == "" {
		n.Image = r.DefaultImage
	}
	if n.Command == "" {
		n.Command = r.DefaultCommand
	}
	if len(n.Args) == 0 && len(r.DefaultArgs) > 0 {
		n.Args = append([]string(nil), r.DefaultArgs...)
	}
	return n
}
