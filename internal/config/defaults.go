package config

// Default configuration values.
const (
	DefaultCaseName = "two_puncture_case"

	// DefaultIgnorePattern drops the generation timestamp banner of the
	// output artifact.
	DefaultIgnorePattern = "^#File created on "
)

// applyDefaults fills in default values for unset case fields.
// An explicitly empty ignore_line_patterns list is kept empty.
func applyDefaults(c *Case) {
	if c.Name == "" {
		c.Name = DefaultCaseName
	}
	if c.IgnoreLinePatterns == nil {
		c.IgnoreLinePatterns = []string{DefaultIgnorePattern}
	}
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
}
