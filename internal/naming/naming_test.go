package naming

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2021-03-04", "2021"},
		{"20210304", "2021"},
		{"1999", "1999"},
		{"", ""},
		{"abc", ""},
		{"20x1-01-01", ""},
		{"-2-0-2-1", "2021"},
		{"unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, Year(tt.date))
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		date  string
		conv  Convention
		want  string
	}{
		{"original with year", "My Video", "2021-03-04", Original, "My Video (2021)"},
		{"original without year", "My Video", "", Original, "My Video"},
		{"original bad date", "My Video", "n/a", Original, "My Video"},
		{"snake", "My Video!", "20210304", SnakeCase, "my_video_(2021)"},
		{"kebab", "My Video!", "20210304", KebabCase, "my-video-(2021)"},
		{"snake trims", "  --Hello, World--  ", "", SnakeCase, "hello_world"},
		{"kebab unicode", "Café Münster", "", KebabCase, "caf-m-nster"},
		{"empty title", "", "", Original, "Untitled"},
		{"empty title snake", "", "2020-01-01", SnakeCase, "untitled_(2020)"},
		{"custom passes base", "My Video", "2021", Custom, "My Video (2021)"},
		{"unknown passes base", "My Video", "", Convention("shouting"), "My Video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.title, tt.date, tt.conv))
		})
	}
}

func TestGenerateProperties(t *testing.T) {
	snake := regexp.MustCompile(`^[a-z0-9_()]*$`)
	kebab := regexp.MustCompile(`^[a-z0-9\-()]*$`)
	alphabet := []rune("abcXYZ 019_-()!?.,/\\:éß\t")
	dates := []string{"", "2021-03-04", "20210304", "1999", "bad", "12"}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := rng.Intn(24)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		title := sb.String()
		date := dates[rng.Intn(len(dates))]

		s := Generate(title, date, SnakeCase)
		require.Regexp(t, snake, s, "title=%q date=%q", title, date)
		require.False(t, strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_"), "title=%q", title)

		k := Generate(title, date, KebabCase)
		require.Regexp(t, kebab, k, "title=%q date=%q", title, date)
		require.False(t, strings.HasPrefix(k, "-") || strings.HasSuffix(k, "-"), "title=%q", title)

		o := Generate(title, date, Original)
		require.NotEmpty(t, o)
		if y := Year(date); y != "" {
			expectedTitle := title
			if expectedTitle == "" {
				expectedTitle = DefaultTitle
			}
			require.Equal(t, expectedTitle+" ("+y+")", o)
		}
	}
}

func TestOriginalEqualsTitleWithoutYear(t *testing.T) {
	for _, title := range []string{"A", "Some Title", "x (1999)"} {
		alsrt.Equal(t, title, Generate(title, "", Original))
		alsrt.Equal(t, title, Generate(title, "not-a-date", Original))
	}
}

func TestMatch(t *testing.T) {
	title, date := "My Video", "2021-03-04"

	t.Run("original", func(t *testing.T) {
		c, ok := Match(title, date, "My Video (2021)")
		assert.True(t, ok)
		assert.Equal(t, Original, c)
	})

	t.Run("snake", func(t *testing.T) {
		c, ok := Match(title, date, "my_video_(2021)")
		assert.True(t, ok)
		assert.Equal(t, SnakeCase, c)
	})

	t.Run("kebab", func(t *testing.T) {
		c, ok := Match(title, date, "my-video-(2021)")
		assert.True(t, ok)
		assert.Equal(t, KebabCase, c)
	})

	t.Run("custom", func(t *testing.T) {
		c, ok := Match(title, date, "Something else")
		assert.False(t, ok)
		assert.Equal(t, Custom, c)
	})

	t.Run("first convention wins", func(t *testing.T) {
		// every convention yields "abc" for this title
		c, ok := Match("abc", "", "abc")
		assert.True(t, ok)
		assert.Equal(t, Original, c)
	})
}

func TestParseConvention(t *testing.T) {
	for _, s := range []string{"original", "snake_case", "kebab_case", "custom"} {
		c, err := ParseConvention(s)
		require.NoError(t, err)
		assert.Equal(t, Convention(s), c)
	}

	c, err := ParseConvention("")
	require.NoError(t, err)
	assert.Equal(t, Original, c)

	_, err = ParseConvention("camelCase")
	assert.Error(t, err)
}

func TestConventionNextAndLabel(t *testing.T) {
	assert.Equal(t, SnakeCase, Original.Next())
	assert.Equal(t, KebabCase, SnakeCase.Next())
	assert.Equal(t, Original, KebabCase.Next())
	assert.Equal(t, Original, Custom.Next())

	assert.Equal(t, "Snake Case", SnakeCase.Label())
	assert.Equal(t, "Custom", Custom.Label())
}

func TestPreview(t *testing.T) {
	f := Fields{
		Title:      "Talk",
		Uploader:   "alice",
		Channel:    "conf",
		UploadDate: "20240102",
		ID:         "abc123",
		Extractor:  "youtube",
	}

	got := Preview("{channel}/{upload_date} - {title} [{id}] ({extractor}, {uploader})", f)
	assert.Equal(t, "conf/20240102 - Talk [abc123] (youtube, alice)", got)

	assert.Equal(t, "Untitled {unknown}", Preview("{title} {unknown}", Fields{}))
	assert.True(t, HasPlaceholders("x {id}"))
	assert.False(t, HasPlaceholders("plain name"))
	assert.Len(t, Placeholders(), 6)
}
