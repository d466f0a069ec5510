package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every envelope variant the backend has shipped must decode to the same
// product list.
func TestDecodeListEnvelopeVariants(t *testing.T) {
	inner := `[{"id":"4b1c8f9e-0f2a-4f6e-9a11-1c2d3e4f5a6b","name":"Phở bò","price":65000,"categoryId":"8a7b6c5d-4e3f-2a1b-0c9d-8e7f6a5b4c3d"}]`
	variants := map[string]string{
		"bare array":       inner,
		"items":            `{"items":` + inner + `}`,
		"content":          `{"content":` + inner + `}`,
		"data items":       `{"data":{"items":` + inner + `}}`,
		"data bare array":  `{"data":` + inner + `}`,
		"succeed envelope": `{"succeed":true,"message":"ok","data":{"items":` + inner + `}}`,
	}

	for name, raw := range variants {
		t.Run(name, func(t *testing.T) {
			var products []Product
			_, err := DecodeList(json.RawMessage(raw), &products)
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Phở bò", products[0].Name)
		})
	}
}

func TestDecodeListUnknownShapeIsEmpty(t *testing.T) {
	var products []Product
	pg, err := DecodeList(json.RawMessage(`{"rows":[{"name":"x"}]}`), &products)
	require.NoError(t, err)
	assert.Nil(t, pg)
	assert.Empty(t, products)
}

func TestDecodeListNullAndEmpty(t *testing.T) {
	var products []Product
	_, err := DecodeList(json.RawMessage(`null`), &products)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = DecodeList(json.RawMessage(``), &products)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDecodeListPageMetadata(t *testing.T) {
	raw := `{"items":[],"page":1,"size":10,"totalItems":42,"totalPages":5,"hasNext":true,"hasPrevious":true}`
	var products []Product
	pg, err := DecodeList(json.RawMessage(raw), &products)
	require.NoError(t, err)
	require.NotNil(t, pg)
	assert.Equal(t, 42, pg.TotalItems)
	assert.Equal(t, 5, pg.TotalPages)
	assert.True(t, pg.HasNext)
}

func TestDecodeObjectUnwrapsNestedData(t *testing.T) {
	raw := `{"data":{"data":{"id":"4b1c8f9e-0f2a-4f6e-9a11-1c2d3e4f5a6b","name":"Trà đá","price":5000}}}`
	var p Product
	require.NoError(t, DecodeObject(json.RawMessage(raw), &p))
	assert.Equal(t, "Trà đá", p.Name)
}

func TestDecodeObjectPlain(t *testing.T) {
	raw := `{"id":"4b1c8f9e-0f2a-4f6e-9a11-1c2d3e4f5a6b","name":"Cà phê sữa","price":25000}`
	var p Product
	require.NoError(t, DecodeObject(json.RawMessage(raw), &p))
	assert.Equal(t, "Cà phê sữa", p.Name)
}
