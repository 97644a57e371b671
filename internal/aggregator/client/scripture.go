package client

import (
	"context"
	"fmt"

	"halal_scanner_backend/internal/aggregator/transport"
)

const (
	SourceQuranCloud   = "Quran (Al Quran Cloud)"
	SourceQuranPages   = "Quran (QuranAPI Pages)"
	SourceHadithFawaz  = "Hadith (Fawaz Ahmed)"
	SourceHadithGading = "Hadith (Gadingnst)"
	SourceHadithArugaz = "Hadith (Arugaz)"
)

const (
	alQuranCloudURL = "https://api.alquran.cloud/v1"
	quranPagesURL   = "https://quranapi.pages.dev/api"
	fawazHadithURL  = "https://cdn.jsdelivr.net/gh/fawazahmed0/hadith-api@1/editions"
	arugazHadithURL = "https://cdn.jsdelivr.net/gh/arugaz-api/hadith-api@z/editions"
	gadingHadithURL = "https://api.hadith.gading.dev/books"

	// quranEditions is the Arabic recitation text followed by the English translation.
	quranEditions = "ar.alafasy,en.asad"
)

// QuranAyah fetches one ayah in the Arabic and English editions.
func (c *Client) QuranAyah(ctx context.Context, surah, ayah int) transport.Outcome {
	return c.run(ctx, SourceQuranCloud, func(ctx context.Context) (any, error) {
		var result transport.AlQuranCloudResult
		reqURL := fmt.Sprintf("%s/ayah/%d:%d/editions/%s", alQuranCloudURL, surah, ayah, quranEditions)
		if err := c.getJSON(ctx, reqURL, &result); err != nil {
			return nil, err
		}
		return result, nil
	})
}

// QuranSurah fetches a whole surah with its Arabic and English arrays.
func (c *Client) QuranSurah(ctx context.Context, surah int) transport.Outcome {
	return c.run(ctx, SourceQuranPages, func(ctx context.Context) (any, error) {
		var result transport.QuranPagesSurah
		if err := c.getJSON(ctx, fmt.Sprintf("%s/%d.json", quranPagesURL, surah), &result); err != nil {
			return nil, err
		}
		return result, nil
	})
}

// HadithFawaz fetches one hadith from the fawazahmed0 English editions.
func (c *Client) HadithFawaz(ctx context.Context, book string, number int) transport.Outcome {
	return c.run(ctx, SourceHadithFawaz, func(ctx context.Context) (any, error) {
		reqURL := fmt.Sprintf("%s/eng-%s/%d.json", fawazHadithURL, book, number)
		return c.editionHadith(ctx, reqURL, book)
	})
}

// HadithArugaz fetches one hadith from the arugaz English editions.
func (c *Client) HadithArugaz(ctx context.Context, book string, number int) transport.Outcome {
	return c.run(ctx, SourceHadithArugaz, func(ctx context.Context) (any, error) {
		reqURL := fmt.Sprintf("%s/eng-%s/hadiths/%d.json", arugazHadithURL, book, number)
		return c.editionHadith(ctx, reqURL, book)
	})
}

// HadithGading fetches one hadith from api.hadith.gading.dev.
func (c *Client) HadithGading(ctx context.Context, book string, number int) transport.Outcome {
	return c.run(ctx, SourceHadithGading, func(ctx context.Context) (any, error) {
		var result transport.GadingHadith
		if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/%d", gadingHadithURL, book, number), &result); err != nil {
			return nil, err
		}
		result.Collection = book
		return result, nil
	})
}

func (c *Client) editionHadith(ctx context.Context, reqURL, book string) (transport.EditionHadith, error) {
	var result transport.EditionHadith
	if err := c.getJSON(ctx, reqURL, &result); err != nil {
		return transport.EditionHadith{}, err
	}
	result.Collection = book
	return result, nil
}
