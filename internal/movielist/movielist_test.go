package movielist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nomadcxx/jellydiff/internal/logging"
	"github.com/Nomadcxx/jellydiff/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amélie", "Amelie"},
		{"Straße", "Strasse"},
		{"Æon Flux", "AEon Flux"},
		{"ＡＢＣ", "ABC"},
		{"Crouching Tiger 卧虎藏龙", "Crouching Tiger "},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldASCII(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Leon The Professional 1994.mkv", Sanitize(`  Léon: The "Professional" <1994>?.mkv `))
	assert.Equal(t, "/media/movies/Heat (1995).mkv", Sanitize("/media/movies/Heat (1995).mkv"))
	assert.Equal(t, `D\Movies\Heat.mkv`, Sanitize(`D:\Movies\Heat.mkv`))
	assert.Equal(t, "HeatCopy.mkv", Sanitize("Heat\tCopy.mkv"))
	assert.Equal(t, "", Sanitize("   "))
}

func writeList(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeList(t,
		"The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv",
		"",
		"   ",
		"Amélie (2001).mkv",
		"Heat.mkv",
		"Heat.mkv",
		".mkv",
	)
	errLog := filepath.Join(t.TempDir(), "out", "Errors.txt")

	loader := NewLoader(nil, nil)
	loader.ErrorLog = errLog

	res, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Lines)
	assert.Equal(t, 2, res.Blank)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 7, res.Failures[0].Line)
	assert.Equal(t, ".mkv", res.Failures[0].Raw)

	var parseErr *naming.ParseError
	assert.True(t, errors.As(res.Failures[0].Err, &parseErr))

	require.Equal(t, 4, res.List.Len())
	titles := make([]string, 0, res.List.Len())
	for _, e := range res.List.Entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"The Matrix", "Amelie", "Heat", "Heat"}, titles)

	assert.Equal(t, "Amélie (2001).mkv", res.List.RawPath("Amelie (2001).mkv"))
	assert.Equal(t, "Amelie", res.List.RawTitle("Amelie (2001).mkv"))

	data, err := os.ReadFile(errLog)
	require.NoError(t, err)
	assert.Equal(t, ".mkv\n", string(data))
}

func TestLoader_ErrorLogAppends(t *testing.T) {
	errLog := filepath.Join(t.TempDir(), "Errors.txt")
	require.NoError(t, os.WriteFile(errLog, []byte("earlier\n"), 0644))

	loader := NewLoader(nil, nil)
	loader.ErrorLog = errLog

	_, err := loader.Load(context.Background(), strings.NewReader("Heat.mkv\n.avi\n"), "second")
	require.NoError(t, err)

	data, err := os.ReadFile(errLog)
	require.NoError(t, err)
	assert.Equal(t, "earlier\n.avi\n", string(data))
}

func TestLoader_NoErrorLogWithoutFailures(t *testing.T) {
	errLog := filepath.Join(t.TempDir(), "Errors.txt")

	loader := NewLoader(nil, nil)
	loader.ErrorLog = errLog

	_, err := loader.Load(context.Background(), strings.NewReader("Heat.mkv\r\nAlien.mkv\r\n"), "first")
	require.NoError(t, err)

	_, err = os.Stat(errLog)
	assert.True(t, os.IsNotExist(err))
}

func TestLoader_Progress(t *testing.T) {
	loader := NewLoader(nil, nil)

	var calls [][2]int
	loader.Progress = func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}

	_, err := loader.Load(context.Background(), strings.NewReader("Heat.mkv\n\nAlien.mkv"), "first")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestLoader_DebugLogsParsedMovie(t *testing.T) {
	var logs bytes.Buffer
	loader := NewLoader(nil, logging.NewWriter(&logs, logging.LevelDebug))

	_, err := loader.Load(context.Background(), strings.NewReader("The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv\nHeat.mkv"), "first.txt")
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "[movielist] Parsed line | list=first.txt | line=1 | movie=The Matrix (1999)")
	assert.Contains(t, out, "line=2 | movie=Heat\n")
}

type stubExtractor struct {
	titles map[string]string
}

func (s stubExtractor) Extract(path string) (*naming.MovieInfo, error) {
	title, ok := s.titles[path]
	if !ok {
		return nil, &naming.ParseError{Input: path, Reason: "unknown"}
	}
	return &naming.MovieInfo{Title: title}, nil
}

func TestLoader_CustomExtractor(t *testing.T) {
	loader := NewLoader(stubExtractor{titles: map[string]string{"a.mkv": "Alpha"}}, nil)

	res, err := loader.Load(context.Background(), strings.NewReader("a.mkv\nb.mkv\n"), "first")
	require.NoError(t, err)

	require.Equal(t, 1, res.List.Len())
	assert.Equal(t, "Alpha", res.List.Entries[0].Title)
	assert.Len(t, res.Failures, 1)
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil, nil).Load(ctx, strings.NewReader("Heat.mkv\n"), "first")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(nil, nil).LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
