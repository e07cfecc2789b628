package qalam

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// UILanguage selects the language of menu labels.
type UILanguage int8

// Supported UI languages.
const (
	English UILanguage = iota
	Arabic
)

func (l UILanguage) String() string {
	if l == Arabic {
		return "ar"
	}
	return "en"
}

var uiMatch = language.NewMatcher([]language.Tag{
	language.English, // The first language is used as fallback.
	language.Arabic,
	language.Persian,
	language.Urdu,
})

// UILanguageFor maps a BCP 47 locale string to a UI language. Locales of
// languages written in Arabic script select Arabic labels.
func UILanguageFor(locale string) UILanguage {
	tag, err := language.Parse(locale)
	if err != nil {
		return English
	}
	if script, conf := tag.Script(); conf != language.No && script.String() == "Arab" {
		return Arabic
	}
	_, inx, confidence := uiMatch.Match(tag)
	if confidence == language.No || inx == 0 {
		return English
	}
	return Arabic
}

// DetectUILanguage inspects the user's environment for a locale and returns
// the UI language to use. It falls back to English.
func DetectUILanguage() UILanguage {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		CT().Errorf(err.Error())
		userLocale = "en-US"
		CT().Infof("qalam sets default user locale %v", userLocale)
	} else {
		CT().Infof("qalam detected user locale %v", userLocale)
	}
	return UILanguageFor(userLocale)
}

// Label is a menu label in both UI languages.
type Label struct {
	En, Ar string
}

// In returns the label text for a UI language.
func (l Label) In(lang UILanguage) string {
	if lang == Arabic && l.Ar != "" {
		return l.Ar
	}
	return l.En
}
