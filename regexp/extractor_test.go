package regexp_test

import (
	"testing"

	"github.com/customs-bot/customs"
	"github.com/customs-bot/customs/regexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_FullDescription(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("BMW X5 2022 г.в. 3.0 л 249 л.с. 50000$")

	require.NotNil(t, attrs.Year)
	assert.Equal(t, 2022, *attrs.Year)
	require.NotNil(t, attrs.EngineLiters)
	assert.InDelta(t, 3.0, *attrs.EngineLiters, 0.001)
	require.NotNil(t, attrs.PowerHP)
	assert.Equal(t, 249, *attrs.PowerHP)
	require.NotNil(t, attrs.PriceUSD)
	assert.Equal(t, 50000, *attrs.PriceUSD)
	require.NotNil(t, attrs.Brand)
	assert.Equal(t, "BMW", *attrs.Brand)
	require.NotNil(t, attrs.Model)
	assert.Equal(t, "X5", *attrs.Model)
}

func TestExtractor_Extract_TwoDigitYear(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Audi Q7 22 г.в.")

	require.NotNil(t, attrs.Year)
	assert.Equal(t, 2022, *attrs.Year)
}

func TestExtractor_Extract_TwoDigitYearAlwaysPrefixed(t *testing.T) {
	t.Parallel()

	// "99" is interpreted as 2099, not 1999. Known behavior: the
	// calculator refuses implausible years at its own boundary.
	e := regexp.NewExtractor()
	attrs := e.Extract("Lada 99 год выпуска")

	require.NotNil(t, attrs.Year)
	assert.Equal(t, 2099, *attrs.Year)
}

func TestExtractor_Extract_PriceOnly(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Только цена: 30000$")

	require.NotNil(t, attrs.PriceUSD)
	assert.Equal(t, 30000, *attrs.PriceUSD)
	assert.Nil(t, attrs.Brand)
	assert.Nil(t, attrs.Model)
	assert.Nil(t, attrs.Year)
	assert.Nil(t, attrs.EngineLiters)
	assert.Nil(t, attrs.PowerHP)
	assert.Nil(t, attrs.MileageKm)
}

func TestExtractor_Extract_PriceWithThousandsSeparators(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Volkswagen Tiguan 2024 г.в. Цена 29 500 $")

	require.NotNil(t, attrs.PriceUSD)
	assert.Equal(t, 29500, *attrs.PriceUSD)
}

func TestExtractor_Extract_MileageThousandsMultiplier(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Audi A4 2021 2.0л 249л.с. 85тыс.км $25000")

	require.NotNil(t, attrs.MileageKm)
	assert.Equal(t, 85000, *attrs.MileageKm)
	require.NotNil(t, attrs.EngineLiters)
	assert.InDelta(t, 2.0, *attrs.EngineLiters, 0.001)
	require.NotNil(t, attrs.PowerHP)
	assert.Equal(t, 249, *attrs.PowerHP)
}

func TestExtractor_Extract_MileagePlainKm(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("BMW X5 2022 г.в. пробег 30000 км")

	require.NotNil(t, attrs.MileageKm)
	assert.Equal(t, 30000, *attrs.MileageKm)
}

func TestExtractor_Extract_PowerMarkerNotMistakenForEngine(t *testing.T) {
	t.Parallel()

	// "249 л.с." must not be claimed by the engine field via its
	// bare "л" marker.
	e := regexp.NewExtractor()
	attrs := e.Extract("Honda Accord 2020 год 249 л.с.")

	require.NotNil(t, attrs.PowerHP)
	assert.Equal(t, 249, *attrs.PowerHP)
	assert.Nil(t, attrs.EngineLiters)
}

func TestExtractor_Extract_EngineCubicMarker(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Volkswagen Tiguan L 2024 г.в. 2.0см3 Цена 29 500 $")

	require.NotNil(t, attrs.EngineLiters)
	assert.InDelta(t, 2.0, *attrs.EngineLiters, 0.001)
}

func TestExtractor_Extract_NoRecognizableData(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	attrs := e.Extract("Некорректная строка без данных")

	assert.True(t, attrs.Empty())
}

func TestExtractor_Extract_EmptyInput(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()

	assert.True(t, e.Extract("").Empty())
}

func TestExtractor_Extract_IdempotentOnNormalizedText(t *testing.T) {
	t.Parallel()

	e := regexp.NewExtractor()
	input := "bmw x5 2022 г.в. 3.0 л 249 л.с. 50000$ 30000 км"

	first := e.Extract(input)
	second := e.Extract(regexp.Normalize(input))

	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bmw x5 2022 г.в.", regexp.Normalize("  BMW   X5\t2022  г.в. "))
}

// Compile-time verification that Extractor implements the interface.
var _ customs.AttributeExtractor = (*regexp.Extractor)(nil)
