package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calbret/showcase/internal/github"
	"github.com/calbret/showcase/internal/model"
	"github.com/calbret/showcase/internal/pipeline"
	"github.com/calbret/showcase/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves a GitHub-contents-shaped repository from memory:
// listings under /repos/o/r/contents/<path> and raw file content under
// /raw/<path>.
type fakeRepo struct {
	server   *httptest.Server
	listings map[string][]map[string]any
	raw      map[string]string
	failPath map[string]int // listing path -> status code to return
}

func newFakeRepo(t *testing.T) *fakeRepo {
	t.Helper()
	f := &fakeRepo{
		listings: map[string][]map[string]any{},
		raw:      map[string]string{},
		failPath: map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRepo) handle(w http.ResponseWriter, r *http.Request) {
	const prefix = "/repos/o/r/contents"
	switch {
	case strings.HasPrefix(r.URL.Path, prefix):
		path := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")
		if code, ok := f.failPath[path]; ok {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"message":"simulated failure"}`))
			return
		}
		listing, ok := f.listings[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(listing)
	case strings.HasPrefix(r.URL.Path, "/raw/"):
		content, ok := f.raw[strings.TrimPrefix(r.URL.Path, "/raw/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(content))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// addProject registers a project directory with the given files. A
// non-empty description is also registered as raw content.
func (f *fakeRepo) addProject(name string, files []string, description string) {
	f.listings["projects"] = append(f.listings["projects"], map[string]any{
		"name":     name,
		"path":     "projects/" + name,
		"type":     "dir",
		"html_url": "https://example.com/tree/projects/" + name,
	})

	var listing []map[string]any
	for _, file := range files {
		listing = append(listing, map[string]any{
			"name":         file,
			"path":         "projects/" + name + "/" + file,
			"type":         "file",
			"download_url": f.server.URL + "/raw/projects/" + name + "/" + file,
		})
	}
	f.listings["projects/"+name] = listing

	if description != "" {
		f.raw["projects/"+name+"/description.txt"] = description
	}
}

func (f *fakeRepo) client() *github.Client {
	return github.NewClient("o", "r", "", github.WithBaseURL(f.server.URL))
}

func (f *fakeRepo) aggregator(opts pipeline.Options) *pipeline.Aggregator {
	if opts.Root == "" {
		opts.Root = "projects"
	}
	return pipeline.New(f.client(), opts)
}

func TestAggregator_ResolvesOptionalAssets(t *testing.T) {
	repo := newFakeRepo(t)
	repo.addProject("full", []string{"full.mp3", "description.txt", "icon.png"}, "  A complete project.  \n")
	repo.addProject("bare", nil, "")
	repo.addProject("icon-and-audio", []string{"icon.png", "icon-and-audio.mp3"}, "")

	snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, snap.Len())
	assert.Empty(t, snap.Warnings)

	byName := map[string]model.Project{}
	for _, p := range snap.Projects {
		byName[p.Name] = p
	}

	full := byName["full"]
	assert.Equal(t, "A complete project.", full.Description, "description should be trimmed")
	assert.True(t, full.HasAudio())
	assert.True(t, full.HasIcon())
	assert.Equal(t, "https://example.com/tree/projects/full", full.SourceURL)

	bare := byName["bare"]
	assert.Empty(t, bare.Description, "missing description is empty, not an error")
	assert.False(t, bare.HasAudio())
	assert.False(t, bare.HasIcon())

	both := byName["icon-and-audio"]
	assert.Empty(t, both.Description)
	assert.True(t, both.HasIcon())
	assert.True(t, both.HasAudio())
}

func TestAggregator_AudioSelection(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string // base name of the selected audio file, "" for none
	}{
		{"exact directory name wins", []string{"other.mp3", "proj.mp3"}, "proj.mp3"},
		{"first mp3 as fallback", []string{"readme.md", "Theme.MP3", "b.mp3"}, "Theme.MP3"},
		{"no audio", []string{"readme.md", "icon.png"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(t)
			repo.addProject("proj", tt.files, "")

			snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, 1, snap.Len())

			p := snap.Projects[0]
			if tt.want == "" {
				assert.False(t, p.HasAudio())
			} else {
				assert.True(t, strings.HasSuffix(p.AudioURL, "/"+tt.want), "AudioURL = %s", p.AudioURL)
			}
		})
	}
}

func TestAggregator_UnreadableDescriptionIsSwallowed(t *testing.T) {
	repo := newFakeRepo(t)
	// description.txt is listed but its raw content is never
	// registered, so the read 404s.
	repo.addProject("flaky", []string{"description.txt", "flaky.mp3"}, "")

	snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Empty(t, snap.Projects[0].Description)
	assert.True(t, snap.Projects[0].HasAudio())
	assert.Empty(t, snap.Warnings, "a failed description read must not warn or skip")
}

func TestAggregator_SkipsDirectoryWhoseListingFails(t *testing.T) {
	repo := newFakeRepo(t)
	repo.addProject("good", []string{"good.mp3"}, "")
	repo.addProject("broken", nil, "")
	repo.failPath["projects/broken"] = http.StatusForbidden

	var warned []string
	snap, err := repo.aggregator(pipeline.Options{
		OnProgress: func(e pipeline.ProgressEvent) {
			if e.Level == pipeline.LevelWarning {
				warned = append(warned, e.Message)
			}
		},
	}).Run(context.Background())
	require.NoError(t, err, "one failing directory must not abort the run")

	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "good", snap.Projects[0].Name)
	require.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], "broken")
	assert.Len(t, warned, 1)
}

func TestAggregator_DiscoveryFailureIsFatal(t *testing.T) {
	repo := newFakeRepo(t)
	repo.failPath["projects"] = http.StatusServiceUnavailable

	snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap, "no snapshot may exist after a fatal discovery failure")

	var pipeErr *pipeline.Error
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, pipeline.StageDiscover, pipeErr.Stage)

	var remoteErr *github.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
}

func TestAggregator_IgnoresFilesAtRoot(t *testing.T) {
	repo := newFakeRepo(t)
	repo.addProject("only", nil, "")
	repo.listings["projects"] = append(repo.listings["projects"], map[string]any{
		"name": "README.md",
		"path": "projects/README.md",
		"type": "file",
	})

	snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "only", snap.Projects[0].Name)
}

func TestAggregator_CancelledContextFailsRun(t *testing.T) {
	repo := newFakeRepo(t)
	repo.addProject("one", nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.aggregator(pipeline.Options{}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAggregator_EndToEndSearch(t *testing.T) {
	repo := newFakeRepo(t)
	repo.addProject("Apple", []string{"description.txt"}, "a pomaceous fruit")
	repo.addProject("apricot", []string{"description.txt"}, "a plump stone fruit")
	repo.addProject("Banana", []string{"description.txt"}, "yellow and curved")

	snap, err := repo.aggregator(pipeline.Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, snap.Len())

	got := search.Rank("ap", snap)
	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Name)
	assert.Equal(t, "apricot", got[1].Name)
}
