package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func TestDraftImageCapacity(t *testing.T) {
	d := client.NewBlueprintDraft("Cat6", "")
	for i := 0; i < domain.MaxBlueprintImages; i++ {
		require.NoError(t, d.AddImage("img"))
	}
	err := d.AddImage("fifth")
	assert.ErrorIs(t, err, client.ErrImageCapacity)
	assert.Len(t, d.Images(), domain.MaxBlueprintImages)

	require.NoError(t, d.RemoveImage(0))
	assert.NoError(t, d.AddImage("fifth"))
	assert.Equal(t, "fifth", d.Images()[3])

	assert.ErrorIs(t, d.RemoveImage(9), client.ErrValidation)
	assert.ErrorIs(t, d.AddImage(" "), client.ErrValidation)
}

func TestDraftPayloadFiltersBlankLabels(t *testing.T) {
	d := client.NewBlueprintDraft(" Cat6 ", "shielded")
	d.AddDimension("Length", "10m")
	d.AddDimension("  ", "x")
	d.AddDimension("Gauge", "23AWG")
	require.NoError(t, d.SetDimension(0, "Length", "20m"))
	assert.ErrorIs(t, d.SetDimension(5, "a", "b"), client.ErrValidation)

	p := d.Payload()
	assert.Equal(t, "Cat6", p.Name)
	assert.Equal(t, []domain.Dimension{{Label: "Length", Value: "20m"}, {Label: "Gauge", Value: "23AWG"}}, p.Dimensions)
	assert.Len(t, d.Dimensions(), 3)

	require.NoError(t, d.RemoveDimension(1))
	assert.Len(t, d.Dimensions(), 2)
}

func TestDraftValidate(t *testing.T) {
	assert.ErrorIs(t, client.NewBlueprintDraft("", "").Validate(), client.ErrValidation)
	assert.NoError(t, client.NewBlueprintDraft("x", "").Validate())
}
