package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (r fakeResult) TableHeader() []string {
	return []string{"NAME", "COUNT"}
}

func (r fakeResult) TableRows() [][]string {
	return [][]string{{r.Name, "3"}}
}

func TestNewFormatterNames(t *testing.T) {
	for _, name := range []string{"json", "yaml", "csv", "table", "JSON", ""} {
		f, err := NewFormatter(name)
		require.NoError(t, err, "format %q", name)
		require.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestFormatJSON(t *testing.T) {
	f, err := NewFormatter("json")
	require.NoError(t, err)

	out, err := f.Format(fakeResult{Name: "probe", Count: 3})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name": "probe"`)
}

func TestFormatYAML(t *testing.T) {
	f, err := NewFormatter("yaml")
	require.NoError(t, err)

	out, err := f.Format(fakeResult{Name: "probe", Count: 3})
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: probe")
	assert.Contains(t, string(out), "count: 3")
}

func TestFormatCSV(t *testing.T) {
	f, err := NewFormatter("csv")
	require.NoError(t, err)

	out, err := f.Format(fakeResult{Name: "probe", Count: 3})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NAME,COUNT", lines[0])
	assert.Equal(t, "probe,3", lines[1])
}

func TestFormatTable(t *testing.T) {
	f, err := NewFormatter("table")
	require.NoError(t, err)

	out, err := f.Format(fakeResult{Name: "probe", Count: 3})
	require.NoError(t, err)
	assert.Contains(t, string(out), "NAME")
	assert.Contains(t, string(out), "probe")
}

func TestRowFormatsRequireTabular(t *testing.T) {
	for _, name := range []string{"csv", "table"} {
		f, err := NewFormatter(name)
		require.NoError(t, err)

		_, err = f.Format(struct{ X int }{1})
		assert.Error(t, err, "format %q", name)
	}
}
