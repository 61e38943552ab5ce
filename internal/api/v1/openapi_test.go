package apiv1

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specPath = "../../../public/docs/v1/openapi.yml"

// The served spec must stay loadable and valid, and must document exactly
// the routes RegisterHandlers mounts.
func TestOpenAPISpecIsValid(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	require.NoError(t, err)

	require.NoError(t, doc.Validate(context.Background()))
	assert.Equal(t, "VisaPilot API", doc.Info.Title)
}

func TestOpenAPISpecCoversRegisteredRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	require.NoError(t, err)

	for _, path := range []string{
		"/ping",
		"/user/profile",
		"/plans",
		"/plans/{uuid}",
		"/plans/{uuid}/status",
		"/upload/sessions",
		"/documents/upload",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "path %s missing from the spec", path)
	}
}

func TestOpenAPISecuredRoutesRequireAPIKey(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	require.NoError(t, err)

	for _, path := range []string{"/user/profile", "/plans", "/upload/sessions"} {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		for _, op := range item.Operations() {
			require.NotNil(t, op.Security, "%s must declare a security requirement", path)
			assert.NotEmpty(t, *op.Security)
		}
	}
}
