package container

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagepdf/internal/config"
	"imagepdf/internal/database"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Logger = config.NewLogger("error", "text", io.Discard)
	return cfg
}

func TestNew_WithDatabase(t *testing.T) {
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	defer database.Close(db)

	c := New(testConfig(), db)

	assert.NotNil(t, c.GetConverter())
	assert.NotNil(t, c.GetSession())
	assert.NotNil(t, c.GetHistoryService())
	require.NotNil(t, c.GetPreferencesService())

	prefs, err := c.GetPreferencesService().GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, "a4", prefs.PageFormat)
	assert.Equal(t, 10.0, prefs.SizeLimitMB)
}

func TestNew_WithoutDatabase(t *testing.T) {
	c := New(testConfig(), nil)

	assert.NotNil(t, c.GetConverter())
	assert.Nil(t, c.GetPreferencesService())
	assert.Nil(t, c.GetHistoryService())
	assert.Equal(t, 2000, c.GetConfig().Policy.MaxDimension)
}
