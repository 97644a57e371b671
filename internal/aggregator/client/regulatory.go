package client

import (
	"context"
	"fmt"
	"net/url"

	"halal_scanner_backend/internal/aggregator/transport"
)

const (
	SourceFDAEnforcement = "FDA Enforcement"
	SourceOpenFDA        = "OpenFDA"
	SourceUSDAFoods      = "USDA Foods"
	SourceFAOSTAT        = "FAOSTAT"
	SourceHalalCertBody  = "Halal Certification Bodies"
)

const (
	openFDAURL = "https://api.fda.gov/food"
	usdaFDCURL = "https://api.nal.usda.gov/fdc/v1"
	faostatURL = "https://fenixservices.fao.org/faostat/api/v1/en"

	// halalCertificationClass is the Wikidata class of halal certification bodies.
	halalCertificationClass = "Q891723"
)

const halalCertBodiesQuery = `SELECT ?item ?itemLabel ?countryLabel WHERE {
  ?item wdt:P31 wd:%s.
  OPTIONAL { ?item wdt:P17 ?country. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
} LIMIT 10`

// FDAEnforcement searches food recall enforcement reports by product name.
func (c *Client) FDAEnforcement(ctx context.Context, name string) transport.Outcome {
	return c.run(ctx, SourceFDAEnforcement, func(ctx context.Context) (any, error) {
		return c.openFDA(ctx, "enforcement", name)
	})
}

// OpenFDA searches food adverse event reports by product name.
func (c *Client) OpenFDA(ctx context.Context, name string) transport.Outcome {
	return c.run(ctx, SourceOpenFDA, func(ctx context.Context) (any, error) {
		return c.openFDA(ctx, "event", name)
	})
}

// USDAFoods searches FoodData Central with the public demo key.
func (c *Client) USDAFoods(ctx context.Context, name string) transport.Outcome {
	return c.run(ctx, SourceUSDAFoods, func(ctx context.Context) (any, error) {
		params := url.Values{}
		params.Set("query", name)
		params.Set("pageSize", "5")
		params.Set("api_key", "DEMO_KEY")

		var result transport.USDAFoodsResult
		if err := c.getJSON(ctx, usdaFDCURL+"/foods/search?"+params.Encode(), &result); err != nil {
			return nil, err
		}
		return result, nil
	})
}

// FAOSTAT lists the FAOSTAT statistical domains.
func (c *Client) FAOSTAT(ctx context.Context) transport.Outcome {
	return c.run(ctx, SourceFAOSTAT, func(ctx context.Context) (any, error) {
		var domains transport.FAOSTATDomains
		if err := c.getJSON(ctx, faostatURL+"/definitions/domain", &domains); err != nil {
			return nil, err
		}
		return domains, nil
	})
}

// HalalCertBodies lists halal certification bodies known to Wikidata.
func (c *Client) HalalCertBodies(ctx context.Context) transport.Outcome {
	return c.run(ctx, SourceHalalCertBody, func(ctx context.Context) (any, error) {
		return c.sparql(ctx, wikidataSPARQL, fmt.Sprintf(halalCertBodiesQuery, halalCertificationClass))
	})
}

func (c *Client) openFDA(ctx context.Context, endpoint, name string) (transport.FDAResult, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("limit", "5")

	var result transport.FDAResult
	reqURL := fmt.Sprintf("%s/%s.json?%s", openFDAURL, endpoint, params.Encode())
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return transport.FDAResult{}, err
	}
	return result, nil
}
