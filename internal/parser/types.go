package parser

type SourceKind string

const (
	Header    SourceKind = "header"
	Source    SourceKind = "source"
	Benchmark SourceKind = "benchmark"
)

type SourceFile struct {
	Kind SourceKind
	Path string
}

// Layout tells discovery where each kind of file lives, relative to root.
type Layout struct {
	Headers          []string
	Sources          []string
	Benchmarks       []string
	HeaderExts       []string
	SourceExts       []string
	RespectGitignore bool
}

// SourceSet groups discovered files by kind, each list sorted.
type SourceSet struct {
	Headers    []string
	Sources    []string
	Benchmarks []string
}

func (s SourceSet) All() []SourceFile {
	out := make([]SourceFile, 0, len(s.Headers)+len(s.Sources)+len(s.Benchmarks))
	for _, p := range s.Headers {
		out = append(out, SourceFile{Kind: Header, Path: p})
	}
	for _, p := range s.Sources {
		out = append(out, SourceFile{Kind: Source, Path: p})
	}
	for _, p := range s.Benchmarks {
		out = append(out, SourceFile{Kind: Benchmark, Path: p})
	}
	return out
}
