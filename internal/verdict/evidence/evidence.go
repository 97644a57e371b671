// Package evidence resolves the scripture and tradition citations attached to a verdict.
// Curated citations come from an embedded corpus keyed by verdict status; fetched
// citations are merged in behind them under de-duplication and size caps.
package evidence

import (
	_ "embed"
	"fmt"

	"halal_scanner_backend/internal/verdict/transport"

	"gopkg.in/yaml.v3"
)

const (
	// MaxQuran caps the merged scripture list.
	MaxQuran = 5
	// MaxHadith caps the merged tradition list.
	MaxHadith = 4
	// minHadithText is the exclusive lower bound on fetched hadith text length.
	minHadithText = 20
)

//go:embed corpus.yaml
var corpusYAML []byte

type corpus struct {
	Quran  map[transport.Status][]transport.Ayah   `yaml:"quran"`
	Hadith map[transport.Status][]transport.Hadith `yaml:"hadith"`
}

var curated = mustLoadCorpus(corpusYAML)

func mustLoadCorpus(data []byte) corpus {
	var c corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(fmt.Sprintf("evidence: parse corpus: %v", err))
	}
	return c
}

type ayahKey struct{ surah, ayah int }

type hadithKey struct {
	book   string
	number int
}

// QuranForStatus returns the curated ayat for a status. makruh and mustahab have none.
func QuranForStatus(status transport.Status) []transport.Ayah {
	return append([]transport.Ayah{}, curated.Quran[status]...)
}

// HadithForStatus returns the curated hadith for a status. halal and mustahab have none.
func HadithForStatus(status transport.Status) []transport.Hadith {
	return append([]transport.Hadith{}, curated.Hadith[status]...)
}

// MergeQuran keeps every static entry first, in order, then appends fetched
// entries that carry both arabic and translation text and whose (surah, ayah)
// is not yet present. The result is cut to MaxQuran.
func MergeQuran(static, dynamic []transport.Ayah) []transport.Ayah {
	merged := make([]transport.Ayah, 0, len(static)+len(dynamic))
	seen := make(map[ayahKey]struct{}, len(static)+len(dynamic))

	for _, a := range static {
		merged = append(merged, a)
		seen[ayahKey{a.Surah, a.Ayah}] = struct{}{}
	}

	for _, a := range dynamic {
		if a.Arabic == "" || a.Translation == "" {
			continue
		}
		key := ayahKey{a.Surah, a.Ayah}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, a)
	}

	if len(merged) > MaxQuran {
		merged = merged[:MaxQuran]
	}
	return merged
}

// MergeHadith keeps every static entry first, in order, then appends fetched
// entries whose text is longer than 20 bytes and whose (book, number) is not
// yet present. The result is cut to MaxHadith.
func MergeHadith(static, dynamic []transport.Hadith) []transport.Hadith {
	merged := make([]transport.Hadith, 0, len(static)+len(dynamic))
	seen := make(map[hadithKey]struct{}, len(static)+len(dynamic))

	for _, h := range static {
		merged = append(merged, h)
		seen[hadithKey{h.Book, h.Number}] = struct{}{}
	}

	for _, h := range dynamic {
		if len(h.Text) <= minHadithText {
			continue
		}
		key := hadithKey{h.Book, h.Number}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, h)
	}

	if len(merged) > MaxHadith {
		merged = merged[:MaxHadith]
	}
	return merged
}

// Attach fills the evidence fields of v from the curated corpus for v.Status
// merged with the fetched citations.
func Attach(v transport.Verdict, quran []transport.Ayah, hadith []transport.Hadith) transport.Verdict {
	v.QuranEvidence = MergeQuran(QuranForStatus(v.Status), quran)
	v.HadithEvidence = MergeHadith(HadithForStatus(v.Status), hadith)
	return v
}
