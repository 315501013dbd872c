package models

import (
	"time"

	"github.com/ostafen/clover/v2/document"
)

// Clover returns list fields as []interface{} and may hand numeric values
// back with a different width than they were stored with. These helpers
// normalize document fields when decoding into model structs.

func docString(doc *document.Document, key string) string {
	if v, ok := doc.Get(key).(string); ok {
		return v
	}
	return ""
}

func docTime(doc *document.Document, key string) time.Time {
	if v, ok := doc.Get(key).(time.Time); ok {
		return v
	}
	return time.Time{}
}

func docStringSlice(doc *document.Document, key string) []string {
	switch v := doc.Get(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
