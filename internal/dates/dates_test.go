package dates

import (
	"testing"
	"time"

	"exercise-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.DatesConfig {
	return config.DatesConfig{
		Timezone:      "America/Chicago",
		StorageLayout: "2006-01-02",
		DisplayLayout: "Mon Jan 02 2006",
	}
}

func TestTodayUsesConfiguredTimezone(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	// 03:00 UTC is still the previous evening in Chicago.
	f.WithClock(func() time.Time {
		return time.Date(2023, 5, 4, 3, 0, 0, 0, time.UTC)
	})

	assert.Equal(t, "2023-05-03", f.Today())
}

func TestDisplayRendersStorageLayout(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	assert.Equal(t, "Tue Jan 10 2023", f.Display("2023-01-10"))
}

func TestDisplayRoundTripsItsOwnOutput(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	rendered := f.Display("2023-01-10")
	assert.Equal(t, rendered, f.Display(rendered))
}

func TestDisplayInvalidInput(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	assert.Equal(t, InvalidDate, f.Display("not-a-date"))
	assert.Equal(t, InvalidDate, f.Display(""))
}

func TestParseDayGranularity(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	fromStorage, err := f.Parse("2023-01-10")
	require.NoError(t, err)
	fromDisplay, err := f.Parse("Tue Jan 10 2023")
	require.NoError(t, err)

	// Both layouts resolve to the same instant, so a record rendered for
	// display compares equal to its own storage-form bound.
	assert.True(t, fromStorage.Equal(fromDisplay))
}

func TestParseRejectsGarbage(t *testing.T) {
	f, err := New(testConfig())
	require.NoError(t, err)

	_, err = f.Parse("soon")
	assert.Error(t, err)
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Neptune/Trident"
	_, err := New(cfg)
	assert.Error(t, err)
}
