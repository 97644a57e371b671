package client

import (
	"context"
	"fmt"
	"net/url"

	"halal_scanner_backend/internal/aggregator/transport"
)

// Ledger source names of the primary product providers.
const (
	SourceOpenFoodFacts       = "OpenFoodFacts"
	SourceFoodRepo            = "FoodRepo"
	SourceOpenProductData     = "OpenProductData"
	SourceOpenFoodFactsSearch = "OpenFoodFacts Search"
	SourceUPCitemdbSearch     = "UPCitemdb Search"
	SourceAlternatives        = "Alternatives"
)

const (
	openFoodFactsURL   = "https://world.openfoodfacts.org"
	foodRepoURL        = "https://www.foodrepo.org/api/v3"
	openProductDataURL = "https://product-open-data.com/api/v1"
	upcItemDBURL       = "https://api.upcitemdb.com/prod/trial"
)

// OpenFoodFacts fetches a product by barcode. The upstream answers 200 with
// status 0 for unknown barcodes, which is reported as not found.
func (c *Client) OpenFoodFacts(ctx context.Context, barcode string) transport.Outcome {
	return c.run(ctx, SourceOpenFoodFacts, func(ctx context.Context) (any, error) {
		var resp struct {
			Status  transport.FlexInt    `json:"status"`
			Product transport.OFFProduct `json:"product"`
		}
		reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", openFoodFactsURL, url.PathEscape(barcode))
		if err := c.getJSON(ctx, reqURL, &resp); err != nil {
			return nil, err
		}
		if resp.Status != 1 {
			return nil, errNotFound
		}
		return resp.Product, nil
	})
}

// FoodRepo fetches a product by barcode.
func (c *Client) FoodRepo(ctx context.Context, barcode string) transport.Outcome {
	return c.run(ctx, SourceFoodRepo, func(ctx context.Context) (any, error) {
		var resp struct {
			Data transport.FoodRepoProduct `json:"data"`
		}
		reqURL := fmt.Sprintf("%s/products/%s", foodRepoURL, url.PathEscape(barcode))
		if err := c.getJSON(ctx, reqURL, &resp); err != nil {
			return nil, err
		}
		return resp.Data, nil
	})
}

// OpenProductData fetches a product by barcode.
func (c *Client) OpenProductData(ctx context.Context, barcode string) transport.Outcome {
	return c.run(ctx, SourceOpenProductData, func(ctx context.Context) (any, error) {
		var product transport.OpenProductDataProduct
		reqURL := fmt.Sprintf("%s/barcode/%s", openProductDataURL, url.PathEscape(barcode))
		if err := c.getJSON(ctx, reqURL, &product); err != nil {
			return nil, err
		}
		return product, nil
	})
}

// OpenFoodFactsSearch runs a full-text product search.
func (c *Client) OpenFoodFactsSearch(ctx context.Context, name string) transport.Outcome {
	return c.run(ctx, SourceOpenFoodFactsSearch, func(ctx context.Context) (any, error) {
		params := url.Values{}
		params.Set("search_terms", name)
		params.Set("search_simple", "1")
		params.Set("json", "1")
		params.Set("page_size", "5")

		var list transport.OFFProductList
		reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", openFoodFactsURL, params.Encode())
		if err := c.getJSON(ctx, reqURL, &list); err != nil {
			return nil, err
		}
		if len(list.Products) == 0 {
			return nil, errNotFound
		}
		return list, nil
	})
}

// UPCitemdbSearch runs a product title search on the UPCitemdb trial API.
func (c *Client) UPCitemdbSearch(ctx context.Context, name string) transport.Outcome {
	return c.run(ctx, SourceUPCitemdbSearch, func(ctx context.Context) (any, error) {
		params := url.Values{}
		params.Set("s", name)

		var result transport.UPCItemResult
		reqURL := fmt.Sprintf("%s/search?%s", upcItemDBURL, params.Encode())
		if err := c.getJSON(ctx, reqURL, &result); err != nil {
			return nil, err
		}
		if len(result.Items) == 0 {
			return nil, errNotFound
		}
		return result, nil
	})
}

// Alternatives lists products from the first category, used as substitute
// recommendations.
func (c *Client) Alternatives(ctx context.Context, category string) transport.Outcome {
	return c.run(ctx, SourceAlternatives, func(ctx context.Context) (any, error) {
		var list transport.OFFProductList
		reqURL := fmt.Sprintf("%s/category/%s.json?page_size=20", openFoodFactsURL, url.PathEscape(category))
		if err := c.getJSON(ctx, reqURL, &list); err != nil {
			return nil, err
		}
		return list, nil
	})
}
