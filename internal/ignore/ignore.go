package ignore

// Filter decides whether a filesystem entry name is excluded from tree
// construction. The fixed set covers version-control and environment
// artifacts; extras from config can only add to it.
type Filter struct {
	names map[string]bool
}

// fixedNames is the ignore set shared by every builder. Two processes must
// agree on these for their root hashes to be comparable.
var fixedNames = []string{
	".env",
	".gitignore",
	".git",
	".DS_Store",
	"__pycache__",
	".venv",
	"venv",
}

// New returns a Filter over the fixed ignore set plus any extra names.
func New(extras ...string) *Filter {
	names := make(map[string]bool, len(fixedNames)+len(extras))
	for _, name := range fixedNames {
		names[name] = true
	}
	for _, name := range extras {
		if name != "" {
			names[name] = true
		}
	}
	return &Filter{names: names}
}

// Ignored reports whether an entry with the given basename is excluded.
func (f *Filter) Ignored(name string) bool {
	return f.names[name]
}

// FixedNames returns a copy of the fixed ignore set.
func FixedNames() []string {
	out := make([]string, len(fixedNames))
	copy(out, fixedNames)
	return out
}
