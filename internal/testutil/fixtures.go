// Package testutil provides contract fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
)

// PetstoreContract is a small Swagger 2.0 contract exercising query, path and
// body parameters, enums, nested objects, arrays and local $refs.
const PetstoreContract = `swagger: "2.0"
info:
  title: Pets
  version: "1.0"
basePath: /v1
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: number
        - name: status
          in: query
          type: string
          enum: [active, inactive]
        - name: tags
          in: query
          type: array
          items:
            type: string
    post:
      operationId: createPet
      parameters:
        - name: pet
          in: body
          schema:
            $ref: '#/definitions/NewPet'
  /pets/{id}:
    parameters:
      - $ref: '#/parameters/PetID'
    get:
      operationId: getPet
    put:
      operationId: updatePet
      parameters:
        - name: pet
          in: body
          schema:
            $ref: '#/definitions/NewPet'
    delete:
      operationId: deletePet
      parameters:
        - name: mode
          in: query
          type: string
          enum: [soft, hard]
  /owners/{ownerId}/pets/{petId}:
    get:
      operationId: getOwnerPet
      parameters:
        - name: ownerId
          in: path
          required: true
          type: string
        - name: petId
          in: path
          required: true
          type: integer
parameters:
  PetID:
    name: id
    in: path
    required: true
    type: number
definitions:
  Address:
    type: object
    required: [city]
    properties:
      city:
        type: string
      zip:
        type: number
  NewPet:
    type: object
    required: [name, status]
    properties:
      name:
        type: string
      status:
        type: string
        enum: [active, inactive]
      tags:
        type: array
        items:
          type: string
          enum: [red, green]
      address:
        $ref: '#/definitions/Address'
`

// ValidPetBody is a request body that satisfies NewPet in PetstoreContract.
func ValidPetBody() map[string]any {
	return map[string]any{
		"name":   "rex",
		"status": "active",
		"tags":   []any{"red", "green"},
		"address": map[string]any{
			"city": "Oslo",
			"zip":  float64(150),
		},
	}
}

// MustLoad loads contract from memory and fails the test on error.
func MustLoad(t *testing.T, contract string) *schema.Document {
	t.Helper()
	doc, err := loader.LoadWithOptions(loader.WithBytes([]byte(contract)))
	require.NoError(t, err)
	return doc
}

// WriteContract writes contract into a temp directory and returns its path.
func WriteContract(t *testing.T, name, contract string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contract), 0o600))
	return path
}
