package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductIndexMappingCoversDocumentFields(t *testing.T) {
	t.Parallel()

	var parsed struct {
		Mappings struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal([]byte(ProductIndexMapping), &parsed))

	for _, field := range []string{"farmer_id", "name", "category", "description", "unit", "price_cents", "stock"} {
		assert.Contains(t, parsed.Mappings.Properties, field)
	}
}
