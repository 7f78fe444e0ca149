package javaparse

// ElementKind classifies a documentable Java element.
type ElementKind int

const (
	KindType ElementKind = iota
	KindMember
)

func (k ElementKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// Element is one documentable declaration found in a source file.
// Line is 1-based and points at the first line of the declaration.
type Element struct {
	Kind      ElementKind
	Name      string
	Signature string
	Line      int
	HasDoc    bool
}

// Outcome tags which extraction stage produced a result.
type Outcome int

const (
	OutcomeParsed Outcome = iota
	OutcomeFallback
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeFallback:
		return "fallback"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExtractionResult holds the elements discovered in one file, split by kind.
// Order within each slice is discovery order from the source scan.
type ExtractionResult struct {
	Types   []Element
	Members []Element
	Outcome Outcome
}

// All returns types followed by members, the order the gap filter consumes.
func (r ExtractionResult) All() []Element {
	out := make([]Element, 0, len(r.Types)+len(r.Members))
	out = append(out, r.Types...)
	out = append(out, r.Members...)
	return out
}
