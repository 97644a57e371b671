package service

import (
	"strconv"
	"strings"

	"halal_scanner_backend/internal/aggregator/transport"
	verdict "halal_scanner_backend/internal/verdict/transport"
)

// bookNames maps hadith-api collection slugs to the display names used by
// the curated corpus, so both share identity keys.
var bookNames = map[string]string{
	"bukhari":  "Sahih Bukhari",
	"muslim":   "Sahih Muslim",
	"tirmidhi": "Sunan al-Tirmidhi",
	"abudawud": "Sunan Abi Dawud",
	"nasai":    "Sunan an-Nasa'i",
	"ibnmajah": "Sunan Ibn Majah",
}

func bookName(slug, fallback string) string {
	if name, ok := bookNames[strings.ToLower(strings.TrimSpace(slug))]; ok {
		return name
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return "Unknown"
}

// harvestQuran extracts well-formed ayat from successful scripture outcomes:
// a positive (surah, ayah) with arabic or translation text present.
func harvestQuran(outcomes []transport.Outcome) []verdict.Ayah {
	ayat := []verdict.Ayah{}
	for _, o := range outcomes {
		if !o.Success {
			continue
		}

		var (
			a  verdict.Ayah
			ok bool
		)
		switch p := o.Payload.(type) {
		case transport.AlQuranCloudResult:
			a, ok = pairEditions(p.Data)
		case transport.QuranPagesSurah:
			a, ok = ayahFromSurah(p, surahAyah)
		}
		if ok {
			ayat = append(ayat, a)
		}
	}
	return ayat
}

// pairEditions folds the Arabic and translation editions of one ayah into a
// single citation.
func pairEditions(editions []transport.AlQuranCloudEdition) (verdict.Ayah, bool) {
	var a verdict.Ayah
	for _, e := range editions {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		if a.Surah == 0 {
			a.Surah = e.Surah.Number
			a.Ayah = e.NumberInSurah
		}
		if strings.HasPrefix(e.Edition.Identifier, "ar.") {
			if a.Arabic == "" {
				a.Arabic = text
			}
		} else if a.Translation == "" {
			a.Translation = text
		}
	}
	return a, wellFormed(a)
}

func ayahFromSurah(s transport.QuranPagesSurah, ayah int) (verdict.Ayah, bool) {
	i := ayah - 1
	a := verdict.Ayah{Surah: s.SurahNo, Ayah: ayah}
	if i >= 0 && i < len(s.Arabic1) {
		a.Arabic = strings.TrimSpace(s.Arabic1[i])
	}
	if i >= 0 && i < len(s.English) {
		a.Translation = strings.TrimSpace(s.English[i])
	}
	return a, wellFormed(a)
}

func wellFormed(a verdict.Ayah) bool {
	return a.Surah > 0 && a.Ayah > 0 && (a.Arabic != "" || a.Translation != "")
}

// harvestHadith extracts entries with non-empty text from successful
// tradition outcomes.
func harvestHadith(outcomes []transport.Outcome) []verdict.Hadith {
	hadith := []verdict.Hadith{}
	for _, o := range outcomes {
		if !o.Success {
			continue
		}

		switch p := o.Payload.(type) {
		case transport.EditionHadith:
			book := bookName(p.Collection, p.Metadata.Name)
			for _, h := range p.Hadiths {
				text := strings.TrimSpace(h.Text)
				if text == "" {
					continue
				}
				hadith = append(hadith, verdict.Hadith{
					Book:    book,
					Number:  int(h.HadithNumber),
					Text:    text,
					Chapter: p.Metadata.Section[strconv.Itoa(int(h.Reference.Book))],
				})
			}
		case transport.GadingHadith:
			// contents.id is the Indonesian rendering; the Arabic source
			// text is kept instead.
			text := strings.TrimSpace(p.Data.Contents.Arab)
			if text == "" {
				text = strings.TrimSpace(p.Data.Contents.ID)
			}
			if text == "" {
				continue
			}
			hadith = append(hadith, verdict.Hadith{
				Book:   bookName(p.Collection, p.Data.Name),
				Number: p.Data.Contents.Number,
				Text:   text,
			})
		}
	}
	return hadith
}
