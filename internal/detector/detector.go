package detector

import (
	"specdocs-backend/internal/models"

	"gopkg.in/yaml.v3"
)

// Detect classifies raw spec content as an OpenAPI document or a Postman
// collection. Content is parsed as YAML, which accepts JSON as a subset.
//
// Unparseable or unrecognized content falls back to openapi: many hand-written
// YAML specs do not round-trip through a generic parser, so the fallback is a
// low-confidence default rather than a verified classification. Detect never
// returns an error.
func Detect(content []byte) models.FileType {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil || doc == nil {
		return models.FileTypeOpenAPI
	}

	if isPostmanCollection(doc) {
		return models.FileTypePostman
	}

	if _, ok := doc["openapi"]; ok {
		return models.FileTypeOpenAPI
	}
	if _, ok := doc["swagger"]; ok {
		return models.FileTypeOpenAPI
	}

	return models.FileTypeOpenAPI
}

// A Postman collection carries an "info" object plus an ordered "item" list.
// OpenAPI documents also have "info", so the item list is the discriminator.
func isPostmanCollection(doc map[string]interface{}) bool {
	if _, ok := doc["openapi"]; ok {
		return false
	}
	if _, ok := doc["swagger"]; ok {
		return false
	}

	info, ok := doc["info"].(map[string]interface{})
	if !ok || info == nil {
		return false
	}
	_, hasItems := doc["item"].([]interface{})
	return hasItems
}
