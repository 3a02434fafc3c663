package opdesc

// ParamConfig is the raw record for a single parameter rule set.
type ParamConfig struct {
	Name      string   `yaml:"-"`
	Type      string   `yaml:"type,omitempty"`
	TypeArgs  []string `yaml:"type_args,omitempty,flow"`
	Required  bool     `yaml:"required,omitempty"`
	Default   any      `yaml:"default,omitempty"`
	Static    bool     `yaml:"static,omitempty"`
	Prepend   string   `yaml:"prepend,omitempty"`
	Append    string   `yaml:"append,omitempty"`
	Filters   []string `yaml:"filters,omitempty,flow"`
	Doc       string   `yaml:"doc,omitempty"`
	MinLength int      `yaml:"min_length,omitempty"`
	MaxLength int      `yaml:"max_length,omitempty"`
}

func (c ParamConfig) commandParam() *Param { return NewParam(c) }

// Param holds the validation rules for one command parameter. Like Command
// it is immutable after construction.
type Param struct {
	cfg ParamConfig
}

// NewParam builds a parameter descriptor from a raw record
func NewParam(cfg ParamConfig) *Param {
	cfg.TypeArgs = append([]string(nil), cfg.TypeArgs...)
	cfg.Filters = append([]string(nil), cfg.Filters...)
	return &Param{cfg: cfg}
}

func (p *Param) commandParam() *Param { return p }

// Name returns the parameter name
func (p *Param) Name() string { return p.cfg.Name }

// Type returns the declared type name, or "" when untyped
func (p *Param) Type() string { return p.cfg.Type }

// TypeArgs returns the declared type arguments
func (p *Param) TypeArgs() []string {
	return append([]string(nil), p.cfg.TypeArgs...)
}

// Required reports whether the parameter must be supplied
func (p *Param) Required() bool { return p.cfg.Required }

// Doc returns the parameter's documentation text
func (p *Param) Doc() string { return p.cfg.Doc }

// MinLength returns the declared minimum length, 0 when undeclared
func (p *Param) MinLength() int { return p.cfg.MinLength }

// MaxLength returns the declared maximum length, 0 when undeclared
func (p *Param) MaxLength() int { return p.cfg.MaxLength }

// Default returns the declared default value
func (p *Param) Default() any { return p.cfg.Default }

// Static reports whether the default always replaces the supplied value
func (p *Param) Static() bool { return p.cfg.Static }

// Filters returns the configured filter chain names
func (p *Param) Filters() []string {
	return append([]string(nil), p.cfg.Filters...)
}

// Value resolves the effective value for a currently-configured value: a
// static parameter always takes its default, a nil value falls back to the
// default, and string values get prepend/append applied.
func (p *Param) Value(current any) any {
	value := current
	if p.cfg.Static || (value == nil && p.cfg.Default != nil) {
		value = p.cfg.Default
	}

	if s, ok := value.(string); ok {
		if p.cfg.Prepend != "" {
			s = p.cfg.Prepend + s
		}
		if p.cfg.Append != "" {
			s += p.cfg.Append
		}
		value = s
	}

	return value
}

// Filter runs the configured filter chain over a value using the default
// filter registry. Unknown filter names are skipped.
func (p *Param) Filter(value any) any {
	return p.FilterWith(DefaultFilters(), value)
}

// FilterWith runs the configured filter chain using a specific registry
func (p *Param) FilterWith(registry *FilterRegistry, value any) any {
	for _, name := range p.cfg.Filters {
		value = registry.Apply(name, value)
	}
	return value
}

// Config exports the parameter as a raw record
func (p *Param) Config() ParamConfig {
	cfg := p.cfg
	cfg.TypeArgs = append([]string(nil), p.cfg.TypeArgs...)
	cfg.Filters = append([]string(nil), p.cfg.Filters...)
	return cfg
}
