package dto

import (
	"golang.org/x/text/language"
)

// Supported response languages; the first is the fallback
var supportedLanguages = []language.Tag{language.English, language.Turkish}

var languageMatcher = language.NewMatcher(supportedLanguages)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"TENANT_REQUIRED":          "Tenant information is required",
		"TOKEN_REQUIRED":           "Access token is required",
		"INVALID_TOKEN":            "Invalid token",
		"TOKEN_EXPIRED":            "Token has expired",
		"USER_NOT_FOUND":           "User not found or inactive",
		"TENANT_INACTIVE":          "Tenant account is not active",
		"AUTH_REQUIRED":            "Authentication required",
		"INSUFFICIENT_PERMISSIONS": "You do not have permission for this operation",
		"INVALID_CREDENTIALS":      "Invalid email or password",
		"INVALID_PASSWORD":         "Current password is incorrect",
		"INVALID_APP":              "Unknown application",
		"TEMPLATE_NOT_FOUND":       "Template not found",
		"BUSINESS_TYPE_NOT_FOUND":  "Business type not found",
		"BUSINESS_TYPE_IN_USE":     "Business type is used by tenants",
		"DUPLICATE_RULE_NAME":      "A pricing rule with this name already exists",
		"VALIDATION_ERROR":         "Validation failed",
		"BAD_REQUEST":              "Invalid request",
		"CONFLICT":                 "Resource already exists",
		"NOT_FOUND":                "Resource not found",
		"INVALID_STATE":            "Operation is not allowed in the current state",
		"REQUEST_TOO_LARGE":        "Request body is too large",
		"RATE_LIMITED":             "Too many requests, please try again later",
		"INTERNAL_ERROR":           "Internal server error",
	},
	language.Turkish: {
		"TENANT_REQUIRED":          "Kiracı bilgisi gerekli",
		"TOKEN_REQUIRED":           "Erişim tokeni gerekli",
		"INVALID_TOKEN":            "Geçersiz token",
		"TOKEN_EXPIRED":            "Token süresi dolmuş",
		"USER_NOT_FOUND":           "Kullanıcı bulunamadı veya aktif değil",
		"TENANT_INACTIVE":          "Kiracı hesabı aktif değil",
		"AUTH_REQUIRED":            "Kimlik doğrulama gerekli",
		"INSUFFICIENT_PERMISSIONS": "Bu işlem için yetkiniz yok",
		"INVALID_CREDENTIALS":      "Geçersiz e-posta veya şifre",
		"INVALID_PASSWORD":         "Mevcut şifre hatalı",
		"INVALID_APP":              "Bilinmeyen uygulama",
		"TEMPLATE_NOT_FOUND":       "Şablon bulunamadı",
		"BUSINESS_TYPE_NOT_FOUND":  "İş türü bulunamadı",
		"BUSINESS_TYPE_IN_USE":     "İş türü kiracılar tarafından kullanılıyor",
		"DUPLICATE_RULE_NAME":      "Bu isimde bir fiyatlandırma kuralı zaten var",
		"VALIDATION_ERROR":         "Doğrulama hatası",
		"BAD_REQUEST":              "Geçersiz istek",
		"CONFLICT":                 "Kayıt zaten mevcut",
		"NOT_FOUND":                "Kayıt bulunamadı",
		"INVALID_STATE":            "İşleme mevcut durumda izin verilmiyor",
		"REQUEST_TOO_LARGE":        "İstek gövdesi çok büyük",
		"RATE_LIMITED":             "Çok fazla istek, lütfen daha sonra tekrar deneyin",
		"INTERNAL_ERROR":           "Sunucu hatası",
	},
}

// MatchLanguage picks the response language for an Accept-Language header
func MatchLanguage(acceptLanguage string) language.Tag {
	_, idx := language.MatchStrings(languageMatcher, acceptLanguage)
	return supportedLanguages[idx]
}

// Localize returns the message for code in lang. Unknown codes fall back to
// English, then to fallback.
func Localize(lang language.Tag, code, fallback string) string {
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	if msg, ok := messages[language.English][code]; ok {
		return msg
	}
	return fallback
}
