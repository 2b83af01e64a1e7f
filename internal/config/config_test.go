package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/widget-basket/internal/config"
	"github.com/noah-isme/widget-basket/internal/offer"
)

func clearedEnv(overrides map[string]string) map[string]string {
	env := map[string]string{
		"APP_ENV":              "",
		"PORT":                 "",
		"OBS_LOG_FORMAT":       "",
		"OBS_LOG_LEVEL":        "",
		"OBS_ENABLE_TRACING":   "",
		"CORS_ALLOWED_ORIGINS": "",
		"RATE_LIMIT":           "",
		"TRUST_PROXY_HEADERS":  "",
		"CATALOG_PRODUCTS":     "",
		"DELIVERY_TIERS":       "",
		"OFFERS":               "",
	}
	for k, v := range overrides {
		env[k] = v
	}
	return env
}

func TestLoadDefaultsToReferenceConfiguration(t *testing.T) {
	cfg, err := config.LoadForTests(clearedEnv(nil))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "console", cfg.LogFormatOr("console"))
	require.Equal(t, "60-M", cfg.RateLimit)
	require.False(t, cfg.TracingEnabled)
	require.False(t, cfg.TrustProxyHeaders)
	require.Equal(t, config.ReferenceProducts(), cfg.Products)
	require.Equal(t, config.ReferenceTiers(), cfg.Tiers)
	require.Equal(t, config.ReferenceOffers(), cfg.Offers)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())

	b, err := cfg.NewBasket(cat)
	require.NoError(t, err)
	for _, code := range []string{"B01", "B01", "R01", "R01", "R01"} {
		require.NoError(t, b.Add(code))
	}
	require.Equal(t, "98.27", b.Total().StringFixed(2))
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(clearedEnv(map[string]string{
		"PORT":                 ":9090",
		"OBS_ENABLE_TRACING":   "yes",
		"TRUST_PROXY_HEADERS":  "true",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"CATALOG_PRODUCTS":     "Y01:Yellow Widget:12.50, B01:Blue Widget:7.95",
		"DELIVERY_TIERS":       "30:3",
		"OFFERS":               "buy_one_get_second_half:Y01",
	}))
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.True(t, cfg.TracingEnabled)
	require.True(t, cfg.TrustProxyHeaders)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Len(t, cfg.Products, 2)
	require.Equal(t, "Yellow Widget", cfg.Products[0].Name)
	require.Equal(t, []config.OfferSpec{{Kind: offer.KindBuyOneGetSecondHalf, Target: "Y01"}}, cfg.Offers)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	b, err := cfg.NewBasket(cat)
	require.NoError(t, err)
	require.NoError(t, b.Add("Y01"))
	require.NoError(t, b.Add("Y01"))
	// 25.00 - 6.25 = 18.75, below 30 so delivery 3
	require.True(t, b.Total().Equal(decimal.RequireFromString("21.75")))
}

func TestLoadDisablesTiersAndOffers(t *testing.T) {
	cfg, err := config.LoadForTests(clearedEnv(map[string]string{
		"DELIVERY_TIERS": "none",
		"OFFERS":         "NONE",
	}))
	require.NoError(t, err)
	require.Empty(t, cfg.Tiers)
	require.Empty(t, cfg.Offers)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	cases := map[string]map[string]string{
		"product shape":  {"CATALOG_PRODUCTS": "R01:Red Widget"},
		"product price":  {"CATALOG_PRODUCTS": "R01:Red Widget:abc"},
		"negative price": {"CATALOG_PRODUCTS": "R01:Red Widget:-1"},
		"tier shape":     {"DELIVERY_TIERS": "50"},
		"tier threshold": {"DELIVERY_TIERS": "0:4.95"},
		"tier cost":      {"DELIVERY_TIERS": "50:-1"},
		"offer kind":     {"OFFERS": "three_for_two"},
	}
	for name, overrides := range cases {
		_, err := config.LoadForTests(clearedEnv(overrides))
		require.Error(t, err, name)
	}
}
