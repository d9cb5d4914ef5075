package naming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovieName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantYear  string
	}{
		{
			name:      "scene release with group",
			input:     "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv",
			wantTitle: "The Matrix",
			wantYear:  "1999",
		},
		{
			name:      "parenthesized year",
			input:     "the matrix (2001).mp4",
			wantTitle: "the matrix",
			wantYear:  "2001",
		},
		{
			name:      "leading number stays in title",
			input:     "2001 The Matrix.mkv",
			wantTitle: "2001 The Matrix",
		},
		{
			name:      "title that is a year",
			input:     "1917.2019.2160p.UHD.mkv",
			wantTitle: "1917",
			wantYear:  "2019",
		},
		{
			name:      "annotation removed",
			input:     "Movie A (copy).mkv",
			wantTitle: "Movie A",
		},
		{
			name:      "directory components ignored",
			input:     "/media/movies/Heat (1995)/Heat (1995).mkv",
			wantTitle: "Heat",
			wantYear:  "1995",
		},
		{
			name:      "windows separators",
			input:     `D\Movies\Alien (1979).avi`,
			wantTitle: "Alien",
			wantYear:  "1979",
		},
		{
			name:      "hyphenated title kept",
			input:     "Spider-Man (2002).mkv",
			wantTitle: "Spider Man",
			wantYear:  "2002",
		},
		{
			name:      "bracket tags and audio channels",
			input:     "Dune [2021] 5.1 WEB-DL.mkv",
			wantTitle: "Dune",
			wantYear:  "2021",
		},
		{
			name:      "no extension",
			input:     "Mr. Smith Goes to Washington",
			wantTitle: "Mr Smith Goes to Washington",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseMovieName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, info.Title)
			assert.Equal(t, tt.wantYear, info.Year)
		})
	}
}

func TestParseMovieName_Errors(t *testing.T) {
	for _, input := range []string{"", "/media/movies/", ".mkv", "1080p.BluRay.x264.mkv"} {
		t.Run(input, func(t *testing.T) {
			info, err := ParseMovieName(input)
			assert.Nil(t, info)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %v", err)
			assert.Equal(t, input, pe.Input)
		})
	}
}

func TestFormatMovieName(t *testing.T) {
	assert.Equal(t, "Heat (1995)", FormatMovieName(&MovieInfo{Title: "Heat", Year: "1995"}))
	assert.Equal(t, "Heat", FormatMovieName(&MovieInfo{Title: "Heat"}))
}
