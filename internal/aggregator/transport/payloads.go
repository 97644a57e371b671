package transport

import (
	"encoding/json"
	"fmt"
)

// Provider payloads. Each type mirrors only the parts of an upstream
// response this service reads; they are stored as Outcome.Payload.

// =============================================================================
// Product providers
// =============================================================================

// OFFProduct is an Open Food Facts product object.
type OFFProduct struct {
	Code                string         `json:"code"`
	ProductName         string         `json:"product_name"`
	GenericName         string         `json:"generic_name,omitempty"`
	Brands              string         `json:"brands,omitempty"`
	IngredientsText     string         `json:"ingredients_text,omitempty"`
	Categories          string         `json:"categories,omitempty"`
	ImageURL            string         `json:"image_url,omitempty"`
	ManufacturingPlaces string         `json:"manufacturing_places,omitempty"`
	Countries           string         `json:"countries,omitempty"`
	Nutriments          map[string]any `json:"nutriments,omitempty"`
}

// OFFProductList is an Open Food Facts search or category listing.
type OFFProductList struct {
	Count    FlexInt      `json:"count"`
	Products []OFFProduct `json:"products"`
}

// FoodRepoProduct is a FoodRepo v3 product.
type FoodRepoProduct struct {
	ID                      int               `json:"id"`
	Barcode                 string            `json:"barcode"`
	NameTranslations        map[string]string `json:"name_translations"`
	IngredientsTranslations map[string]string `json:"ingredients_translations"`
	Images                  []struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"images,omitempty"`
	Nutrients map[string]any `json:"nutrients,omitempty"`
}

// OpenProductDataProduct is a product-open-data.com barcode record.
type OpenProductDataProduct struct {
	Barcode     string   `json:"barcode"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Ingredients FlexList `json:"ingredients,omitempty"`
	Categories  FlexList `json:"categories,omitempty"`
	Image       string   `json:"image,omitempty"`
	Country     string   `json:"country,omitempty"`
}

// UPCItemResult is a UPCitemdb search response.
type UPCItemResult struct {
	Code  string    `json:"code"`
	Total int       `json:"total"`
	Items []UPCItem `json:"items"`
}

// UPCItem is one UPCitemdb catalogue entry.
type UPCItem struct {
	EAN         string   `json:"ean"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// =============================================================================
// Brand providers
// =============================================================================

// WikipediaSummary is a Wikipedia REST page summary.
type WikipediaSummary struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Extract     string `json:"extract,omitempty"`
}

// SPARQLResult is a SPARQL 1.1 JSON results document.
type SPARQLResult struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]SPARQLValue `json:"bindings"`
	} `json:"results"`
}

// SPARQLValue is one bound variable.
type SPARQLValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// LinkagePayload is the boycott linkage verdict for a brand.
type LinkagePayload struct {
	HasLink bool `json:"hasLink"`
	Matches int  `json:"matches"`
}

// SanctionsResult is an OpenSanctions search response.
type SanctionsResult struct {
	Total struct {
		Value int `json:"value"`
	} `json:"total"`
	Results []struct {
		ID       string   `json:"id"`
		Caption  string   `json:"caption"`
		Schema   string   `json:"schema"`
		Datasets []string `json:"datasets,omitempty"`
	} `json:"results"`
}

// =============================================================================
// Country providers
// =============================================================================

// CountryFacts is a REST Countries v3.1 country.
type CountryFacts struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA3       string   `json:"cca3,omitempty"`
	Region     string   `json:"region,omitempty"`
	Subregion  string   `json:"subregion,omitempty"`
	Population int64    `json:"population,omitempty"`
	Flag       string   `json:"flag,omitempty"`
	Capital    []string `json:"capital,omitempty"`
}

// GeoNamesResult is a GeoNames searchJSON response. GeoNames reports
// errors in Status with HTTP 200.
type GeoNamesResult struct {
	TotalResultsCount int `json:"totalResultsCount"`
	Geonames          []struct {
		Name        string `json:"name"`
		CountryName string `json:"countryName"`
		CountryCode string `json:"countryCode"`
		Population  int64  `json:"population"`
		Lat         string `json:"lat"`
		Lng         string `json:"lng"`
	} `json:"geonames"`
	Status *struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	} `json:"status,omitempty"`
}

// WorldBankPopulation is a World Bank indicator response. The upstream body
// is a two-element array [page metadata, rows].
type WorldBankPopulation struct {
	Total int            `json:"total"`
	Rows  []WorldBankRow `json:"rows"`
}

// WorldBankRow is one yearly indicator value.
type WorldBankRow struct {
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

func (w *WorldBankPopulation) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("world bank: empty response")
	}

	var meta struct {
		Total   FlexInt `json:"total"`
		Message []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"message"`
	}
	if err := json.Unmarshal(parts[0], &meta); err != nil {
		return err
	}
	if len(meta.Message) > 0 {
		return fmt.Errorf("world bank: %s", meta.Message[0].Value)
	}
	w.Total = int(meta.Total)

	if len(parts) < 2 || string(parts[1]) == "null" {
		w.Rows = nil
		return nil
	}
	return json.Unmarshal(parts[1], &w.Rows)
}

// =============================================================================
// Regulatory and reference providers
// =============================================================================

// FDAResult is an openFDA food endpoint response.
type FDAResult struct {
	Meta struct {
		Results struct {
			Total int `json:"total"`
		} `json:"results"`
	} `json:"meta"`
	Results []map[string]any `json:"results"`
}

// USDAFoodsResult is a FoodData Central search response.
type USDAFoodsResult struct {
	TotalHits int `json:"totalHits"`
	Foods     []struct {
		FdcID       int    `json:"fdcId"`
		Description string `json:"description"`
		BrandOwner  string `json:"brandOwner,omitempty"`
		Ingredients string `json:"ingredients,omitempty"`
	} `json:"foods"`
}

// FAOSTATDomains is the FAOSTAT domain definitions listing.
type FAOSTATDomains struct {
	Data []map[string]any `json:"data"`
}

// =============================================================================
// Scripture and tradition-text providers
// =============================================================================

// AlQuranCloudResult is an alquran.cloud multi-edition ayah response.
type AlQuranCloudResult struct {
	Code int                   `json:"code"`
	Data []AlQuranCloudEdition `json:"data"`
}

// AlQuranCloudEdition is one edition's rendering of an ayah.
type AlQuranCloudEdition struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Surah         struct {
		Number      int    `json:"number"`
		EnglishName string `json:"englishName"`
	} `json:"surah"`
	Edition struct {
		Identifier string `json:"identifier"`
		Language   string `json:"language"`
	} `json:"edition"`
}

// QuranPagesSurah is a quranapi.pages.dev surah document.
type QuranPagesSurah struct {
	SurahName string   `json:"surahName"`
	SurahNo   int      `json:"surahNo"`
	TotalAyah int      `json:"totalAyah"`
	English   []string `json:"english"`
	Arabic1   []string `json:"arabic1"`
}

// EditionHadith is a fawazahmed0/arugaz hadith-api edition document.
// Collection is the requested book slug, set by the adapter.
type EditionHadith struct {
	Collection string `json:"collection"`
	Metadata   struct {
		Name    string            `json:"name"`
		Section map[string]string `json:"section,omitempty"`
	} `json:"metadata"`
	Hadiths []struct {
		HadithNumber FlexInt `json:"hadithnumber"`
		Text         string  `json:"text"`
		Reference    struct {
			Book   FlexInt `json:"book"`
			Hadith FlexInt `json:"hadith"`
		} `json:"reference"`
	} `json:"hadiths"`
}

// GadingHadith is an api.hadith.gading.dev hadith response.
// Collection is the requested book slug, set by the adapter.
type GadingHadith struct {
	Collection string `json:"collection"`
	Code       int    `json:"code"`
	Data       struct {
		Name     string `json:"name"`
		ID       string `json:"id"`
		Contents struct {
			Number int    `json:"number"`
			Arab   string `json:"arab"`
			ID     string `json:"id"`
		} `json:"contents"`
	} `json:"data"`
}
