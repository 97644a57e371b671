package service

import (
	"testing"

	"halal_scanner_backend/internal/aggregator/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_OpenFoodFacts(t *testing.T) {
	product := normalize(transport.OFFProduct{
		Code:                "5000112548167",
		GenericName:         " Cola drink ",
		Brands:              "Coca-Cola,  The Coca-Cola Company",
		IngredientsText:     "carbonated water, sugar, , colour (caramel E150d)",
		Categories:          "Beverages,Sodas",
		ManufacturingPlaces: "",
		Countries:           "en:united-kingdom, en:france",
	})

	require.NotNil(t, product)
	assert.Equal(t, "Cola drink", product.Name)
	assert.Equal(t, "Coca-Cola", product.Brand)
	assert.Equal(t, []string{"carbonated water", "sugar", "colour (caramel E150d)"}, product.Ingredients)
	assert.Equal(t, []string{"Beverages", "Sodas"}, product.Categories)
	assert.Equal(t, "united-kingdom", product.OriginCountry)
}

func TestNormalize_ManufacturingPlaceWinsOverCountries(t *testing.T) {
	product := normalize(transport.OFFProduct{
		ProductName:         "Kit",
		ManufacturingPlaces: "Thailand",
		Countries:           "United States",
	})

	assert.Equal(t, "Thailand", product.OriginCountry)
}

func TestNormalize_StripsIngredientMarkup(t *testing.T) {
	product := normalize(transport.OFFProduct{
		ProductName:     "Biscuits <b>Classic</b>",
		IngredientsText: `_Wheat_ flour, sugar, <span class="allergen">milk</span> powder`,
	})

	require.NotNil(t, product)
	assert.Equal(t, "Biscuits Classic", product.Name)
	assert.Equal(t, []string{"Wheat flour", "sugar", "milk powder"}, product.Ingredients)
}

func TestNormalize_UPCItem(t *testing.T) {
	product := normalize(transport.UPCItemResult{Items: []transport.UPCItem{
		{Title: "  "},
		{EAN: "0737628064502", Title: "Thai Kitchen noodles", Brand: "Thai Kitchen", Category: "Food > Pasta & Noodles", Images: []string{"a.jpg", "b.jpg"}},
	}})

	require.NotNil(t, product)
	assert.Equal(t, "Thai Kitchen noodles", product.Name)
	assert.Equal(t, []string{"Food", "Pasta & Noodles"}, product.Categories)
	assert.Equal(t, "a.jpg", product.ImageURL)
	assert.NotNil(t, product.Ingredients)
}

func TestNormalize_UnknownPayload(t *testing.T) {
	assert.Nil(t, normalize(transport.WikipediaSummary{Title: "Nestle"}))
	assert.Nil(t, normalize(nil))
}

func TestSelectCanonical_SkipsFailedAndNameless(t *testing.T) {
	primary := []transport.Outcome{
		{Source: "a", Success: false, Error: "timeout"},
		{Source: "b", Success: true, Payload: transport.OpenProductDataProduct{Name: ""}},
		{Source: "c", Success: true, Payload: transport.OpenProductDataProduct{Name: "Biscuits", Barcode: "999"}},
	}

	product := selectCanonical(transport.KeyBarcode, "123", primary)

	require.NotNil(t, product)
	assert.Equal(t, "Biscuits", product.Name)
	assert.Equal(t, "123", product.Barcode)
	assert.NotNil(t, product.Categories)

	assert.Nil(t, selectCanonical(transport.KeyBarcode, "123", primary[:2]))
}

func TestHarvestQuran_SurahDocumentAndMalformedEntries(t *testing.T) {
	surah := transport.QuranPagesSurah{
		SurahNo: 5,
		English: []string{"one", "two", "Forbidden to you are carrion, blood, the flesh of swine"},
		Arabic1: []string{"١", "٢", "حُرِّمَتْ عَلَيْكُمُ الْمَيْتَةُ"},
	}
	outcomes := []transport.Outcome{
		{Success: true, Payload: surah},
		{Success: true, Payload: transport.QuranPagesSurah{SurahNo: 5}},
		{Success: true, Payload: transport.AlQuranCloudResult{}},
		{Success: false, Payload: surah},
	}

	ayat := harvestQuran(outcomes)

	require.Len(t, ayat, 1)
	assert.Equal(t, 5, ayat[0].Surah)
	assert.Equal(t, 3, ayat[0].Ayah)
	assert.Equal(t, "Forbidden to you are carrion, blood, the flesh of swine", ayat[0].Translation)
}

func TestHarvestHadith_Gading(t *testing.T) {
	var gading transport.GadingHadith
	gading.Collection = "muslim"
	gading.Data.Name = "HR. Muslim"
	gading.Data.Contents.Number = 5
	gading.Data.Contents.Arab = "نص عربي"
	gading.Data.Contents.ID = "teks terjemahan"

	hadith := harvestHadith([]transport.Outcome{{Success: true, Payload: gading}})

	require.Len(t, hadith, 1)
	assert.Equal(t, "Sahih Muslim", hadith[0].Book)
	assert.Equal(t, 5, hadith[0].Number)
	assert.Equal(t, "نص عربي", hadith[0].Text)

	gading.Data.Contents.Arab = ""
	hadith = harvestHadith([]transport.Outcome{{Success: true, Payload: gading}})
	require.Len(t, hadith, 1)
	assert.Equal(t, "teks terjemahan", hadith[0].Text)
}

func TestBookName(t *testing.T) {
	assert.Equal(t, "Sahih Bukhari", bookName("Bukhari", ""))
	assert.Equal(t, "HR. Ahmad", bookName("ahmad", "HR. Ahmad"))
	assert.Equal(t, "Unknown", bookName("", ""))
}
