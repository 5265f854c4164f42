package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nextgen/domain/core"
	"nextgen/domain/engagement"
	apperrors "nextgen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `user_id,domain,engagement_score,date,user_type,session_duration,clicks,completed_lessons
12,YouTube,50,2025-08-01,Free,10,4,0
7,Medium,99,2025-08-01,Free,20,9,0
31,Coursera,88,2025-08-03,Student,45,12,6
9,medium,40,2025-08-04,Premium,30,3,0
44,Udemy,61,2025-08-05,Teacher,75,20,2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "user_data.csv", sampleCSV)

	ds, err := Load(DefaultSourceConfig(path), nil)
	require.NoError(t, err)

	records := ds.Records()
	require.Len(t, records, 3)
	assert.Equal(t, engagement.Record{
		UserID:           31,
		Domain:           "Coursera",
		EngagementScore:  88,
		Date:             core.NewDate(2025, time.August, 3),
		UserType:         "Student",
		SessionDuration:  45,
		Clicks:           12,
		CompletedLessons: 6,
	}, records[1])
	for _, r := range records {
		assert.NotEqual(t, "medium", strings.ToLower(r.Domain))
	}
}

func TestLoadIgnoresColumnOrderAndExtras(t *testing.T) {
	content := "date,clicks,domain,note,user_id,user_type,engagement_score,completed_lessons,session_duration\n" +
		"2025-08-02,3,Spotify,hi,5,Free,70,0,33\n"
	path := writeFile(t, "reordered.csv", content)

	ds, err := Load(DefaultSourceConfig(path), nil)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 70, ds.Records()[0].EngagementScore)
	assert.Equal(t, 33, ds.Records()[0].SessionDuration)
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", strings.Join(engagement.Columns, ",")+"\n")

	ds, err := Load(DefaultSourceConfig(path), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestLoadErrors(t *testing.T) {
	header := strings.Join(engagement.Columns, ",")

	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "missing column",
			content: "user_id,domain,engagement_score,date,user_type,session_duration,clicks\n1,YouTube,5,2025-08-01,Free,5,5\n",
			target:  core.ErrMissingColumn,
		},
		{
			name:    "bad integer",
			content: header + "\n1,YouTube,high,2025-08-01,Free,5,5,0\n",
			target:  core.ErrMalformedValue,
		},
		{
			name:    "bad date",
			content: header + "\n1,YouTube,50,01/08/2025,Free,5,5,0\n",
			target:  core.ErrMalformedValue,
		},
		{
			name:    "ragged row",
			content: header + "\n1,YouTube,50\n",
			target:  core.ErrMalformedValue,
		},
		{
			name:    "empty file",
			content: "",
			target:  core.ErrMalformedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			ds, err := Load(DefaultSourceConfig(path), nil)
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, core.ErrLoad)
			assert.Equal(t, apperrors.CodeLoadError, apperrors.GetCode(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(DefaultSourceConfig(filepath.Join(t.TempDir(), "nope.csv")), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSourceMissing)
	assert.Equal(t, apperrors.CodeLoadError, apperrors.GetCode(err))
}

func TestMalformedValueNamesRowAndColumn(t *testing.T) {
	header := strings.Join(engagement.Columns, ",")
	content := header + "\n1,YouTube,50,2025-08-01,Free,5,5,0\n2,Udemy,50,2025-08-01,Free,five,5,0\n"

	_, err := LoadReader(strings.NewReader(content), FileTypeCSV, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3 column session_duration")
}

func TestCSVRoundTrip(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), FileTypeCSV, nil)
	require.NoError(t, err)

	c := engagement.DefaultCriteria(ds)
	c.MinSession = 20
	view := engagement.Apply(ds, c)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, view.Records()))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(engagement.Columns, ",")+"\n"))

	reloaded, err := LoadReader(&buf, FileTypeCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, view.Records(), reloaded.Records())
}

func TestCSVRoundTripEmptyView(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), FileTypeCSV, nil)
	require.NoError(t, err)

	c := engagement.DefaultCriteria(ds)
	c.AllDomains = false
	c.Domains = nil
	view := engagement.Apply(ds, c)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, view.Records()))

	reloaded, err := LoadReader(&buf, FileTypeCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestXLSXRoundTrip(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), FileTypeCSV, nil)
	require.NoError(t, err)
	records := ds.Records()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records))

	reloaded, err := LoadReader(&buf, FileTypeXLSX, nil)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded.Records())
}

func TestSaveAndLoadByExtension(t *testing.T) {
	ds, err := LoadReader(strings.NewReader(sampleCSV), FileTypeCSV, nil)
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"out.csv", "out.xlsx"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, ds.Records()))

		reloaded, err := Load(DefaultSourceConfig(path), nil)
		require.NoError(t, err, name)
		assert.Equal(t, ds.Records(), reloaded.Records(), name)
	}
}

func TestFileTypeOf(t *testing.T) {
	assert.Equal(t, FileTypeXLSX, FileTypeOf("data/User_Data.XLSX"))
	assert.Equal(t, FileTypeCSV, FileTypeOf("user_data.csv"))
	assert.Equal(t, FileTypeCSV, FileTypeOf("user_data"))
}
