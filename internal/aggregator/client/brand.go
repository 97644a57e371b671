package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"halal_scanner_backend/internal/aggregator/transport"
)

const (
	SourceWikipedia     = "Wikipedia"
	SourceWikidata      = "Wikidata"
	SourceDBpedia       = "DBpedia"
	SourceBoycottLink   = "Boycott Linkage Check"
	SourceOpenSanctions = "OpenSanctions"
)

const (
	wikipediaURL     = "https://en.wikipedia.org/api/rest_v1"
	wikidataSPARQL   = "https://query.wikidata.org/sparql"
	dbpediaSPARQL    = "https://dbpedia.org/sparql"
	openSanctionsURL = "https://api.opensanctions.org"

	// linkageCountry is the Wikidata entity checked by the linkage query.
	linkageCountry = "Q801"
)

const wikidataOwnershipQuery = `SELECT ?item ?itemLabel ?ownerLabel ?countryLabel WHERE {
  ?item rdfs:label "%s"@en.
  OPTIONAL { ?item wdt:P127 ?owner. }
  OPTIONAL { ?item wdt:P17 ?country. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
} LIMIT 5`

const dbpediaOwnershipQuery = `SELECT * WHERE {
  ?subject rdfs:label "%s"@en.
  OPTIONAL { ?subject dbo:owner ?owner. }
  OPTIONAL { ?subject dbo:country ?country. }
} LIMIT 5`

const wikidataLinkageQuery = `SELECT ?item ?itemLabel ?countryLabel WHERE {
  ?item rdfs:label "%s"@en.
  ?item wdt:P17 wd:%s.
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
} LIMIT 5`

// Wikipedia fetches the page summary for a brand.
func (c *Client) Wikipedia(ctx context.Context, brand string) transport.Outcome {
	return c.run(ctx, SourceWikipedia, func(ctx context.Context) (any, error) {
		var summary transport.WikipediaSummary
		reqURL := fmt.Sprintf("%s/page/summary/%s", wikipediaURL, url.PathEscape(brand))
		if err := c.getJSON(ctx, reqURL, &summary); err != nil {
			return nil, err
		}
		return summary, nil
	})
}

// Wikidata looks up the owner and country of a brand.
func (c *Client) Wikidata(ctx context.Context, brand string) transport.Outcome {
	return c.run(ctx, SourceWikidata, func(ctx context.Context) (any, error) {
		return c.sparql(ctx, wikidataSPARQL, fmt.Sprintf(wikidataOwnershipQuery, sparqlEscape(brand)))
	})
}

// DBpedia looks up the owner and country of a brand.
func (c *Client) DBpedia(ctx context.Context, brand string) transport.Outcome {
	return c.run(ctx, SourceDBpedia, func(ctx context.Context) (any, error) {
		return c.sparql(ctx, dbpediaSPARQL, fmt.Sprintf(dbpediaOwnershipQuery, sparqlEscape(brand)))
	})
}

// BoycottLinkage checks whether Wikidata records the brand under the linkage
// country. Any binding counts as a link.
func (c *Client) BoycottLinkage(ctx context.Context, brand string) transport.Outcome {
	return c.run(ctx, SourceBoycottLink, func(ctx context.Context) (any, error) {
		result, err := c.sparql(ctx, wikidataSPARQL, fmt.Sprintf(wikidataLinkageQuery, sparqlEscape(brand), linkageCountry))
		if err != nil {
			return nil, err
		}
		matches := len(result.Results.Bindings)
		return transport.LinkagePayload{HasLink: matches > 0, Matches: matches}, nil
	})
}

// OpenSanctions searches the default sanctions collection for a brand.
func (c *Client) OpenSanctions(ctx context.Context, brand string) transport.Outcome {
	return c.run(ctx, SourceOpenSanctions, func(ctx context.Context) (any, error) {
		params := url.Values{}
		params.Set("q", brand)

		var result transport.SanctionsResult
		reqURL := fmt.Sprintf("%s/search/default?%s", openSanctionsURL, params.Encode())
		if err := c.getJSON(ctx, reqURL, &result); err != nil {
			return nil, err
		}
		return result, nil
	})
}

func (c *Client) sparql(ctx context.Context, endpoint, query string) (transport.SPARQLResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	var result transport.SPARQLResult
	if err := c.getJSON(ctx, endpoint+"?"+params.Encode(), &result); err != nil {
		return transport.SPARQLResult{}, err
	}
	return result, nil
}

var sparqlReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// sparqlEscape makes s safe inside a double-quoted SPARQL literal.
func sparqlEscape(s string) string {
	return sparqlReplacer.Replace(s)
}
