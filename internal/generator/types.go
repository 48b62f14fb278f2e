package generator

// Kind tags the logical content of a classified file.
type Kind string

const (
	KindEntity          Kind = "entity"
	KindEnum            Kind = "enum"
	KindGuard           Kind = "guard"
	KindDTO             Kind = "dto"
	KindDecorator       Kind = "decorator"
	KindService         Kind = "service"
	KindController      Kind = "controller"
	KindModule          Kind = "module"
	KindCompositeGuard  Kind = "composite-guard"
	KindCompositeEntity Kind = "composite-entity"
	KindOther           Kind = "other"
)

// IsEntityLike reports whether files of this kind carry persistence models,
// which implies the target family's ORM packages must be installed.
func (k Kind) IsEntityLike() bool {
	return k == KindEntity || k == KindCompositeEntity
}

// WarningKind is a machine-readable warning tag.
type WarningKind string

const (
	WarnDuplicatePath     WarningKind = "duplicate-path"
	WarnUnresolvedImport  WarningKind = "unresolved-import"
	WarnMalformedImport   WarningKind = "malformed-import"
	WarnUnterminatedBlock WarningKind = "unterminated-block"
)

// Warning records a non-fatal condition encountered during generation.
// The pipeline never aborts; callers decide whether warnings fail the run.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Subject string      `json:"subject"` // path, specifier or line, depending on kind
	Detail  string      `json:"detail"`
}

// Meta is the optional frontmatter of a boilerplate document.
type Meta struct {
	Name      string `yaml:"name"`
	Framework string `yaml:"framework"`
}

// Fragment is one fenced code block extracted from a feature section.
type Fragment struct {
	Section   string // owning feature section name
	Language  string // declared fence language, lower-cased
	Text      string
	StartLine int // line of the opening fence in the source document
	Index     int // position of the fragment within its section
}

// FeatureSection is a named region of the document grouping related fragments.
type FeatureSection struct {
	Name      string
	StartLine int
	Fragments []Fragment
}

// Document is the parsed boilerplate document. It is never mutated after
// ParseDocument returns; every pipeline stage reads from it.
type Document struct {
	Source   string // raw text, frontmatter stripped
	Meta     Meta
	Sections []FeatureSection
	Warnings []Warning // extraction warnings (unterminated fences)
}

// Fragments returns every fragment of the document in source order.
func (d *Document) Fragments() []Fragment {
	var out []Fragment
	for _, s := range d.Sections {
		out = append(out, s.Fragments...)
	}
	return out
}

// SectionNames returns the feature section names in document order.
func (d *Document) SectionNames() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

// ClassifiedFile is a fragment bound to its canonical output path.
type ClassifiedFile struct {
	Path     string // canonical relative path, forward slashes
	Content  string
	Kind     Kind
	Language string            // declared fence language of the source fragment
	Imports  []ImportStatement // parsed by the orchestrator, read-only afterwards
}

// ImportStatement is one structured import extracted from a file's text.
type ImportStatement struct {
	RawLine    string
	LineIndex  int // zero-based line position within the file content
	ModulePath string
	BoundNames []string // ordered, unique
	IsRelative bool
	IsDefault  bool
}

// Dependency is one entry of the dependency manifest.
type Dependency struct {
	Name  string `json:"name"`
	IsDev bool   `json:"is_dev"`
}

// Result is the complete output of one pipeline run: an ordered path→content
// list with no duplicate paths, the dependency manifest and all warnings.
type Result struct {
	Files        []ClassifiedFile
	Dependencies []Dependency
	Warnings     []Warning
	Stats        Stats
}

// Stats summarizes one generation run.
type Stats struct {
	Sections         int
	Fragments        int
	FilesEmitted     int
	FilesResolved    int // files discovered transitively by the resolver
	ImportsRewritten int
	DurationSeconds  float64
}

// WarningsOf filters the result's warnings by kind.
func (r *Result) WarningsOf(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
