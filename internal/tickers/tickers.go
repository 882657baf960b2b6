// Package tickers provides a searchable directory of common US symbols
// so callers can resolve a company name to its ticker before running
// research on it.
package tickers

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Entry is one listing in the symbol directory.
type Entry struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Exchange string `json:"exchange"`
}

// Directory is an in-memory full-text index over the built-in symbol
// table.
type Directory struct {
	index bleve.Index
}

// NewDirectory builds and indexes the directory.
func NewDirectory() (*Directory, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create ticker index: %w", err)
	}

	batch := index.NewBatch()
	for _, e := range builtinEntries {
		if err := batch.Index(e.Symbol, e); err != nil {
			return nil, fmt.Errorf("index %s: %w", e.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("index ticker batch: %w", err)
	}

	return &Directory{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	entryMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.Index = true
	entryMapping.AddFieldMappingsAt("symbol", textFieldMapping)
	entryMapping.AddFieldMappingsAt("name", textFieldMapping)
	entryMapping.AddFieldMappingsAt("sector", textFieldMapping)
	entryMapping.AddFieldMappingsAt("exchange", textFieldMapping)

	indexMapping.AddDocumentMapping("_default", entryMapping)
	return indexMapping
}

// Search ranks directory entries against a free-text query. Exact and
// prefix symbol hits rank above name matches.
func (d *Directory) Search(query string, limit int) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	lower := strings.ToLower(query)

	exactSymbol := bleve.NewTermQuery(lower)
	exactSymbol.SetField("symbol")
	exactSymbol.SetBoost(10.0)

	prefixSymbol := bleve.NewPrefixQuery(lower)
	prefixSymbol.SetField("symbol")
	prefixSymbol.SetBoost(5.0)

	nameMatch := bleve.NewMatchQuery(query)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)

	wildcardSymbol := bleve.NewWildcardQuery("*" + lower + "*")
	wildcardSymbol.SetField("symbol")
	wildcardSymbol.SetBoost(2.0)

	wildcardName := bleve.NewWildcardQuery("*" + lower + "*")
	wildcardName.SetField("name")
	wildcardName.SetBoost(1.5)

	searchQuery := bleve.NewDisjunctionQuery(
		exactSymbol,
		prefixSymbol,
		nameMatch,
		wildcardSymbol,
		wildcardName,
	)

	request := bleve.NewSearchRequest(searchQuery)
	request.Fields = []string{"symbol", "name", "sector", "exchange"}
	request.Size = limit

	results, err := d.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("ticker search: %w", err)
	}

	entries := make([]Entry, 0, len(results.Hits))
	for _, hit := range results.Hits {
		entries = append(entries, entryFromFields(hit.Fields))
	}
	return entries, nil
}

// Lookup returns the directory entry for an exact symbol.
func (d *Directory) Lookup(symbol string) (Entry, bool) {
	termQuery := bleve.NewTermQuery(strings.ToLower(symbol))
	termQuery.SetField("symbol")

	request := bleve.NewSearchRequest(termQuery)
	request.Fields = []string{"symbol", "name", "sector", "exchange"}
	request.Size = 1

	results, err := d.index.Search(request)
	if err != nil || len(results.Hits) == 0 {
		return Entry{}, false
	}
	return entryFromFields(results.Hits[0].Fields), true
}

// Size returns the number of indexed entries.
func (d *Directory) Size() int {
	count, err := d.index.DocCount()
	if err != nil {
		return 0
	}
	return int(count)
}

// Close releases the index.
func (d *Directory) Close() error {
	return d.index.Close()
}

func entryFromFields(fields map[string]interface{}) Entry {
	getString := func(key string) string {
		if val, ok := fields[key].(string); ok {
			return val
		}
		return ""
	}
	return Entry{
		Symbol:   getString("symbol"),
		Name:     getString("name"),
		Sector:   getString("sector"),
		Exchange: getString("exchange"),
	}
}
