// Package market assembles market snapshots for known vehicle
// attributes by querying an external classifieds source. It owns the
// query construction (brand/model normalization, tolerance windows),
// per-host rate limiting, request-scoped caching, and the concurrent
// fan-out over regional mirrors.
package market

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/customs-bot/customs"
)

// Tolerance windows around the known attributes. Each window has a
// minimum width so small values never produce degenerate zero-width
// ranges; lower bounds are clamped at zero.
const (
	yearWindow = 1

	engineWindowFrac = 0.20
	engineWindowMinL = 0.2

	powerWindowFrac  = 0.20
	powerWindowMinHP = 20

	// Mileage is asymmetric: lower-mileage comparables are always
	// acceptable, so the window only extends upward.
	mileageWindowFrac  = 0.50
	mileageWindowMinKm = 10_000

	priceWindowFrac   = 0.20
	priceWindowMinUSD = 2000
)

// brandAliases maps user vocabulary to the site's brand slugs.
var brandAliases = map[string]string{
	"mercedes": "mercedes-benz",
	"vw":       "volkswagen",
	"lada":     "vaz",
	"бмв":      "bmw",
	"мерседес": "mercedes-benz",
}

// modelAliases maps user vocabulary to the site's model slugs.
var modelAliases = map[string]string{
	"e-class": "e-klasse",
	"c-class": "c-klasse",
	"s-class": "s-klasse",
}

// BuildQueryURL constructs the listing search URL for the given
// attributes against a base URL. Brand and model are required (they
// form the URL path); all other attributes contribute a tolerance
// window only when present.
func BuildQueryURL(baseURL string, attrs *customs.VehicleAttributes) (string, error) {
	if attrs == nil || attrs.Brand == nil || attrs.Model == nil {
		return "", customs.Errorf(customs.EINVALID, "brand and model required for a market query")
	}

	params := url.Values{}
	params.Set("order", "price")
	params.Set("unsold", "1")

	if attrs.Year != nil {
		params.Set("minyear", strconv.Itoa(*attrs.Year-yearWindow))
		params.Set("maxyear", strconv.Itoa(*attrs.Year+yearWindow))
	}
	if attrs.EngineLiters != nil {
		lo, hi := window(*attrs.EngineLiters, engineWindowFrac, engineWindowMinL)
		params.Set("mv", strconv.FormatFloat(lo, 'f', 1, 64))
		params.Set("xv", strconv.FormatFloat(hi, 'f', 1, 64))
	}
	if attrs.PowerHP != nil {
		lo, hi := window(float64(*attrs.PowerHP), powerWindowFrac, powerWindowMinHP)
		params.Set("minpower", strconv.Itoa(int(lo)))
		params.Set("maxpower", strconv.Itoa(int(hi)))
	}
	if attrs.MileageKm != nil {
		delta := float64(*attrs.MileageKm) * mileageWindowFrac
		if delta < mileageWindowMinKm {
			delta = mileageWindowMinKm
		}
		params.Set("minprobeg", "0")
		params.Set("maxprobeg", strconv.Itoa(*attrs.MileageKm+int(delta)))
	}
	if attrs.PriceUSD != nil {
		lo, hi := window(float64(*attrs.PriceUSD), priceWindowFrac, priceWindowMinUSD)
		params.Set("minprice", strconv.Itoa(int(lo)))
		params.Set("maxprice", strconv.Itoa(int(hi)))
	}

	return strings.TrimRight(baseURL, "/") + "/" +
		NormalizeBrand(*attrs.Brand) + "/" +
		NormalizeModel(*attrs.Model) + "/?" +
		params.Encode(), nil
}

// window returns a symmetric ± range around v with a minimum half-width
// and a non-negative lower bound.
func window(v, frac, min float64) (lo, hi float64) {
	delta := v * frac
	if delta < min {
		delta = min
	}
	lo = v - delta
	if lo < 0 {
		lo = 0
	}
	return lo, v + delta
}

// NormalizeBrand converts a brand candidate to the site's URL slug.
func NormalizeBrand(brand string) string {
	brand = strings.ToLower(strings.TrimSpace(brand))
	if alias, ok := brandAliases[brand]; ok {
		return alias
	}
	return strings.ReplaceAll(brand, " ", "-")
}

// NormalizeModel converts a model candidate to the site's URL slug.
func NormalizeModel(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	if alias, ok := modelAliases[model]; ok {
		return alias
	}
	return strings.ReplaceAll(model, " ", "-")
}
