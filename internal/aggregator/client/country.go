package client

import (
	"context"
	"fmt"
	"net/url"

	"halal_scanner_backend/internal/aggregator/transport"
)

const (
	SourceRESTCountries = "REST Countries"
	SourceGeoNames      = "GeoNames"
	SourceWorldBank     = "World Bank"
)

const (
	restCountriesURL = "https://restcountries.com/v3.1"
	geoNamesURL      = "http://api.geonames.org"
	worldBankURL     = "https://api.worldbank.org/v2"
)

// RESTCountries fetches country facts by name. The first match is kept.
func (c *Client) RESTCountries(ctx context.Context, country string) transport.Outcome {
	return c.run(ctx, SourceRESTCountries, func(ctx context.Context) (any, error) {
		var countries []transport.CountryFacts
		reqURL := fmt.Sprintf("%s/name/%s", restCountriesURL, url.PathEscape(country))
		if err := c.getJSON(ctx, reqURL, &countries); err != nil {
			return nil, err
		}
		if len(countries) == 0 {
			return nil, errNotFound
		}
		return countries[0], nil
	})
}

// GeoNames searches places in a country using the public demo account.
func (c *Client) GeoNames(ctx context.Context, country string) transport.Outcome {
	return c.run(ctx, SourceGeoNames, func(ctx context.Context) (any, error) {
		params := url.Values{}
		params.Set("country", country)
		params.Set("maxRows", "1")
		params.Set("username", "demo")

		var result transport.GeoNamesResult
		reqURL := fmt.Sprintf("%s/searchJSON?%s", geoNamesURL, params.Encode())
		if err := c.getJSON(ctx, reqURL, &result); err != nil {
			return nil, err
		}
		if result.Status != nil {
			return nil, fmt.Errorf("%w: geonames %d %s", errRejected, result.Status.Value, result.Status.Message)
		}
		return result, nil
	})
}

// WorldBank fetches the total population indicator for a 3-letter code.
func (c *Client) WorldBank(ctx context.Context, code string) transport.Outcome {
	return c.run(ctx, SourceWorldBank, func(ctx context.Context) (any, error) {
		var population transport.WorldBankPopulation
		reqURL := fmt.Sprintf("%s/country/%s/indicator/SP.POP.TOTL?format=json", worldBankURL, url.PathEscape(code))
		if err := c.getJSON(ctx, reqURL, &population); err != nil {
			return nil, err
		}
		return population, nil
	})
}
