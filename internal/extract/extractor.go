package extract

// Extractor turns raw HTML into a Document. Implementations must be safe for
// concurrent use; the fetcher calls them from every worker.
type Extractor interface {
	Extract(input []byte) (Document, error)
}

// Heuristic is the tree-walking extractor backed by FromHTML.
type Heuristic struct{}

func (Heuristic) Extract(input []byte) (Document, error) {
	return FromHTML(input)
}

// Default returns the extractor used when none is configured.
func Default() Extractor {
	return Readability{}
}
