package types

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// DefaultTexconv is the executable looked up when no path is configured
const DefaultTexconv = "texconv"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Texconv string // texconv executable name or path
}

// VersionOrDefault tolerates a nil context
func (c *AppContext) VersionOrDefault() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// TexconvOrDefault tolerates a nil context
func (c *AppContext) TexconvOrDefault() string {
	if c == nil || c.Texconv == "" {
		return DefaultTexconv
	}
	return c.Texconv
}
