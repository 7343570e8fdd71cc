package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ReadingAge is the recommended reader age bracket of a book.
// Clients see the display label; the store keeps a stable code.
type ReadingAge uint8

const (
	ReadingAgeUndefined ReadingAge = iota
	ReadingAge1To3
	ReadingAge4To7
	ReadingAge8To10
	ReadingAge11To14
	ReadingAge15To17
	ReadingAge18Plus
)

var readingAgeLabels = [...]string{
	ReadingAgeUndefined: "No defined",
	ReadingAge1To3:      "1 - 3 years",
	ReadingAge4To7:      "4 - 7 years",
	ReadingAge8To10:     "8 - 10 years",
	ReadingAge11To14:    "11 - 14 years",
	ReadingAge15To17:    "15 - 17 years",
	ReadingAge18Plus:    "older than 18",
}

var readingAgeCodes = [...]string{
	ReadingAgeUndefined: "undefined",
	ReadingAge1To3:      "1-3",
	ReadingAge4To7:      "4-7",
	ReadingAge8To10:     "8-10",
	ReadingAge11To14:    "11-14",
	ReadingAge15To17:    "15-17",
	ReadingAge18Plus:    "18+",
}

// ReadingAges lists every bracket in display order.
func ReadingAges() []ReadingAge {
	return []ReadingAge{
		ReadingAgeUndefined, ReadingAge1To3, ReadingAge4To7, ReadingAge8To10,
		ReadingAge11To14, ReadingAge15To17, ReadingAge18Plus,
	}
}

// ParseReadingAge accepts either the display label or the storage code.
func ParseReadingAge(s string) (ReadingAge, error) {
	i, ok := lookupEnum(s, readingAgeLabels[:], readingAgeCodes[:])
	if !ok {
		return ReadingAgeUndefined, fmt.Errorf("unknown reading age %q", s)
	}
	return ReadingAge(i), nil
}

func (r ReadingAge) String() string {
	if int(r) >= len(readingAgeLabels) {
		return readingAgeLabels[ReadingAgeUndefined]
	}
	return readingAgeLabels[r]
}

// Code returns the storage representation.
func (r ReadingAge) Code() string {
	if int(r) >= len(readingAgeCodes) {
		return readingAgeCodes[ReadingAgeUndefined]
	}
	return readingAgeCodes[r]
}

func (r ReadingAge) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *ReadingAge) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reading_age must be a string: %w", err)
	}
	parsed, err := ParseReadingAge(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r ReadingAge) Value() (driver.Value, error) {
	return r.Code(), nil
}

func (r *ReadingAge) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	if s == "" {
		*r = ReadingAgeUndefined
		return nil
	}
	parsed, err := ParseReadingAge(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Language is the language a book is written in.
type Language uint8

const (
	LanguageUndefined Language = iota
	LanguageEnglish
	LanguageSpanish
	LanguageFrench
	LanguageGerman
)

var languageLabels = [...]string{
	LanguageUndefined: "No defined",
	LanguageEnglish:   "english",
	LanguageSpanish:   "spanish",
	LanguageFrench:    "french",
	LanguageGerman:    "german",
}

var languageCodes = [...]string{
	LanguageUndefined: "undefined",
	LanguageEnglish:   "en",
	LanguageSpanish:   "es",
	LanguageFrench:    "fr",
	LanguageGerman:    "de",
}

// Languages lists every language in display order.
func Languages() []Language {
	return []Language{LanguageUndefined, LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman}
}

// ParseLanguage accepts either the display label or the storage code.
func ParseLanguage(s string) (Language, error) {
	i, ok := lookupEnum(s, languageLabels[:], languageCodes[:])
	if !ok {
		return LanguageUndefined, fmt.Errorf("unknown language %q", s)
	}
	return Language(i), nil
}

func (l Language) String() string {
	if int(l) >= len(languageLabels) {
		return languageLabels[LanguageUndefined]
	}
	return languageLabels[l]
}

// Code returns the storage representation.
func (l Language) Code() string {
	if int(l) >= len(languageCodes) {
		return languageCodes[LanguageUndefined]
	}
	return languageCodes[l]
}

func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Language) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("language must be a string: %w", err)
	}
	parsed, err := ParseLanguage(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l Language) Value() (driver.Value, error) {
	return l.Code(), nil
}

func (l *Language) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	if s == "" {
		*l = LanguageUndefined
		return nil
	}
	parsed, err := ParseLanguage(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// lookupEnum matches labels case-insensitively, ignoring surrounding spaces
// (older rows carry "french " and "german " with a trailing blank).
func lookupEnum(s string, labels, codes []string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i := range labels {
		if needle == strings.ToLower(labels[i]) || needle == codes[i] {
			return i, true
		}
	}
	return 0, false
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported enum source type %T", src)
	}
}

// Valid reports whether r is one of the declared brackets.
func (r ReadingAge) Valid() bool {
	return int(r) < len(readingAgeCodes)
}

// Valid reports whether l is one of the declared languages.
func (l Language) Valid() bool {
	return int(l) < len(languageCodes)
}
