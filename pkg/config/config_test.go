package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.DB.Driver)
	assert.Equal(t, 100, cfg.Admin.ListPerPage)
	assert.Equal(t, 200, cfg.Admin.MaxShowAll)
	assert.Equal(t, 1, cfg.Admin.InlineExtra, "un solo espacio en blanco por defecto en los inlines")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.Migrate)
}

func TestFromViper_OverridesFromStrings(t *testing.T) {
	v := viper.New()
	v.Set("ADMIN_LIST_PER_PAGE", "20")
	v.Set("ADMIN_INLINE_EXTRA", "3")
	v.Set("STORE_DRIVER", "memory")
	v.Set("DB_MIGRATE", "false")
	v.Set("ADMIN_SITE_HEADER", "Cabecera")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Admin.ListPerPage)
	assert.Equal(t, 3, cfg.Admin.InlineExtra)
	assert.Equal(t, StoreMemory, cfg.DB.Driver)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, "Cabecera", cfg.Admin.SiteHeader)
}

func TestFromViper_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"driver desconocido":   {"STORE_DRIVER": "mysql"},
		"página cero":          {"ADMIN_LIST_PER_PAGE": 0},
		"extra negativo":       {"ADMIN_INLINE_EXTRA": -1},
		"producción sin clave": {"APP_ENV": "production"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range values {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "admin", Password: "p@ss:word", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "postgres://admin:p%40ss%3Aword@db:5432/catalog?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
