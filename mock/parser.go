package mock

import "github.com/customs-bot/customs"

var _ customs.SnapshotParser = (*SnapshotParser)(nil)

// SnapshotParser is a mock implementation of customs.SnapshotParser.
type SnapshotParser struct {
	ParseFn func(html string, sourceURL string) (*customs.MarketSnapshot, error)
}

func (p *SnapshotParser) Parse(html string, sourceURL string) (*customs.MarketSnapshot, error) {
	return p.ParseFn(html, sourceURL)
}
