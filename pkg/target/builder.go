package target

// Builder holds the identifier to URL mapping for one run. Every URL is
// computed once at construction and never recomputed; both lookup
// directions are read-only afterwards and safe for concurrent readers.
type Builder struct {
	tmpl    Template
	forward map[string]string
	reverse map[string]string
}

// NewBuilder computes the URL for every identifier.
func NewBuilder(tmpl Template, identifiers []string) *Builder {
	b := &Builder{
		tmpl:    tmpl,
		forward: make(map[string]string, len(identifiers)),
		reverse: make(map[string]string, len(identifiers)),
	}
	for _, id := range identifiers {
		url := tmpl.Build(id)
		b.forward[id] = url
		b.reverse[url] = id
	}
	return b
}

// URL returns the cached URL for identifier.
func (b *Builder) URL(identifier string) (string, bool) {
	url, ok := b.forward[identifier]
	return url, ok
}

// Identifier recovers the identifier a cached URL was built from.
func (b *Builder) Identifier(url string) (string, bool) {
	id, ok := b.reverse[url]
	return id, ok
}
