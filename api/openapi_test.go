package api_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
)

// The served document must stay a valid OpenAPI 3 spec; swagger-ui renders
// whatever we give it without complaint, so this is the only guard.
func TestOpenAPIDocumentIsValid(t *testing.T) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile("openapi.yml")
	if err != nil {
		t.Fatalf("failed to load openapi.yml: %v", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("openapi.yml is not a valid OpenAPI 3 document: %v", err)
	}

	for _, path := range []string{
		"/auth/register",
		"/auth/login",
		"/auth/refresh",
		"/auth/logout",
		"/users/me",
		"/expenses",
		"/expenses/{id}",
		"/expenses/{id}/status",
	} {
		if doc.Paths.Find(path) == nil {
			t.Errorf("missing path %s", path)
		}
	}
}
