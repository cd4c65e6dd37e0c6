package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/testutil"
)

func TestHandleListRoutes(t *testing.T) {
	contractCache.reset()

	result, output, err := handleListRoutes(context.Background(), nil, listRoutesInput{
		Contract: contractInput{Content: testutil.PetstoreContract},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "/v1", output.BasePath)
	assert.Equal(t, 6, output.Total)
	assert.Equal(t, 6, output.Matched)
	assert.Equal(t, 6, output.Returned)

	first := output.Routes[0]
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, "/v1/owners/:ownerId/pets/:petId", first.Pattern)
	assert.Equal(t, "/owners/{ownerId}/pets/{petId}", first.Template)
	assert.Equal(t, "getOwnerPet", first.OperationID)
	assert.Equal(t, 2, first.PathParams)
	assert.False(t, first.HasBody)
}

func TestHandleListRoutes_FilterByMethod(t *testing.T) {
	contractCache.reset()

	_, output, err := handleListRoutes(context.Background(), nil, listRoutesInput{
		Contract: contractInput{Content: testutil.PetstoreContract},
		Method:   "put",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, output.Total)
	assert.Equal(t, 1, output.Matched)
	require.Len(t, output.Routes, 1)
	assert.Equal(t, "updatePet", output.Routes[0].OperationID)
	assert.Equal(t, "/v1/pets/:id", output.Routes[0].Pattern)
	assert.True(t, output.Routes[0].HasBody)
	assert.Equal(t, 1, output.Routes[0].PathParams)
}

func TestHandleListRoutes_Pagination(t *testing.T) {
	contractCache.reset()

	_, output, err := handleListRoutes(context.Background(), nil, listRoutesInput{
		Contract: contractInput{Content: testutil.PetstoreContract},
		Offset:   1,
		Limit:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, output.Matched)
	assert.Equal(t, 2, output.Returned)
	require.Len(t, output.Routes, 2)
	assert.Equal(t, "/v1/pets", output.Routes[0].Pattern)
	assert.Equal(t, "GET", output.Routes[0].Method)
	assert.Equal(t, 3, output.Routes[0].QueryParams)
}

func TestHandleListRoutes_BadContract(t *testing.T) {
	contractCache.reset()

	result, _, err := handleListRoutes(context.Background(), nil, listRoutesInput{
		Contract: contractInput{Content: "- just\n- a list\n"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
