package language

import "strings"

// Default is the language assumed when a request carries none.
const Default = "en"

// Supported maps ISO codes to display names offered to clients.
var Supported = map[string]string{
	"en": "English", "es": "Spanish", "fr": "French", "de": "German",
	"it": "Italian", "pt": "Portuguese", "ru": "Russian",
	"zh": "Chinese (Simplified)", "ja": "Japanese", "ko": "Korean", "ar": "Arabic",

	"hi": "Hindi", "bn": "Bengali", "gu": "Gujarati", "kn": "Kannada",
	"ml": "Malayalam", "mr": "Marathi", "pa": "Punjabi", "ta": "Tamil",
	"te": "Telugu", "ur": "Urdu", "or": "Odia", "as": "Assamese",
}

// nameToCode resolves friendly English and native language names, mostly
// for messaging users who type "lang: hindi" rather than a code.
var nameToCode = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "russian": "ru",
	"chinese": "zh", "japanese": "ja", "korean": "ko", "arabic": "ar",
	"hindi": "hi", "bengali": "bn", "gujarati": "gu", "kannada": "kn",
	"malayalam": "ml", "marathi": "mr", "punjabi": "pa", "tamil": "ta",
	"telugu": "te", "urdu": "ur", "odia": "or", "oriya": "or", "assamese": "as",

	"हिंदी": "hi", "বাংলা": "bn", "ગુજરાતી": "gu", "ಕನ್ನಡ": "kn",
	"മലയാളം": "ml", "मराठी": "mr", "ਪੰਜਾਬੀ": "pa", "தமிழ்": "ta",
	"తెలుగు": "te", "اردو": "ur", "ଓଡ଼ିଆ": "or", "অসমীয়া": "as",
}

// NormalizeCode resolves a code ("hi"), a region tag ("en-US"), or a
// friendly name ("hindi", "हिंदी") to a supported ISO code, defaulting
// to English.
func NormalizeCode(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return Default
	}
	if _, ok := Supported[lang]; ok {
		return lang
	}
	if base, _, found := strings.Cut(lang, "-"); found {
		if _, ok := Supported[base]; ok {
			return base
		}
		lang = base
	}
	if code, ok := nameToCode[lang]; ok {
		return code
	}
	return Default
}

// Name returns the display name of a supported code, or the code itself.
func Name(code string) string {
	if name, ok := Supported[code]; ok {
		return name
	}
	return code
}
