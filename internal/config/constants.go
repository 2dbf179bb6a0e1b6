package config

// NamespaceSep separates namespace segments in rendered type names.
const NamespaceSep = "::"

// CorpusFileExtensions are all recognized corpus file extensions.
var CorpusFileExtensions = []string{".tg.yaml", ".tg.yml"}

// Rendered separators for method references.
const (
	InstanceMethodSep  = "#"
	SingletonMethodSep = "."
)

// WriterMethodSuffix is appended to attribute names when desugaring
// writable attributes into writer methods.
const WriterMethodSuffix = "="
