package services

import (
	"strings"
	"unicode/utf8"

	"github.com/asadnakade/mini-lms/internal/models"
)

// maxTextContentLength is the maximum number of characters for a TEXT lesson
const maxTextContentLength = 10000

// videoHosts are hosting domains accepted for VIDEO lessons regardless of
// the URL's file extension
var videoHosts = []string{"youtube.com", "vimeo.com", "youtu.be"}

// videoExtensions are file extensions accepted for directly hosted videos
var videoExtensions = []string{".mp4", ".webm", ".ogg"}

// imageExtensions are file extensions accepted for IMAGE lessons
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp"}

// IsContentValidForType reports whether content is acceptable for the given
// lesson type. Pure predicate, no side effects.
//
// Blank content is rejected for every type. URL-backed types require an
// http:// or https:// prefix. Extension matching is a literal,
// case-sensitive suffix check.
func IsContentValidForType(lessonType models.LessonType, content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}

	switch lessonType {
	case models.LessonTypeText:
		return utf8.RuneCountInString(content) <= maxTextContentLength
	case models.LessonTypeVideo:
		return isValidURL(content) && (containsAny(content, videoHosts) || hasAnySuffix(content, videoExtensions))
	case models.LessonTypeImage:
		return isValidURL(content) && hasAnySuffix(content, imageExtensions)
	case models.LessonTypePdf:
		return isValidURL(content) && strings.HasSuffix(content, ".pdf")
	default:
		return false
	}
}

// isValidURL checks that the content looks like an http(s) URL
func isValidURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
