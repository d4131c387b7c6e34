package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/shipshape/internal/backend/docker"
)

type fakeBackend struct {
	project    string
	containers []docker.ProjectContainer
	err        error
}

func (f *fakeBackend) ContainersForProject(_ context.Context, project string) ([]docker.ProjectContainer, error) {
	f.project = project
	return f.containers, f.err
}

func TestResolve_CollectsContainersImagesAndVolumes(t *testing.T) {
	b := &fakeBackend{containers: []docker.ProjectContainer{
		{ID: "c1", Name: "myapp-web-1", Image: "myapp/web:dev", Volumes: []string{"myapp_pgdata"}},
		{ID: "c2", Name: "myapp-db-1", Image: "postgres:16", Volumes: []string{"myapp_pgdata", "myapp_cache"}},
	}}

	out := Resolve(context.Background(), b, "/home/dev/myapp")

	assert.Equal(t, "myapp", b.project, "project is the directory base name")
	assert.ElementsMatch(t, []string{"c1", "myapp-web-1", "c2", "myapp-db-1"}, out.Containers)
	assert.ElementsMatch(t, []string{"myapp/web:dev", "postgres:16"}, out.Images)
	assert.ElementsMatch(t, []string{"myapp_pgdata", "myapp_pgdata", "myapp_cache"}, out.Volumes)
}

func TestResolve_BackendErrorYieldsNothing(t *testing.T) {
	b := &fakeBackend{err: errors.New("daemon down")}

	out := Resolve(context.Background(), b, "/home/dev/myapp")

	assert.Empty(t, out.Containers)
	assert.Empty(t, out.Images)
	assert.Empty(t, out.Volumes)
}

func TestResolve_NilBackend(t *testing.T) {
	out := Resolve(context.Background(), nil, "/home/dev/myapp")

	assert.Empty(t, out.Containers)
}

func TestResolve_MissingMetadataAddsNothingForThatItem(t *testing.T) {
	b := &fakeBackend{containers: []docker.ProjectContainer{
		{ID: "c1"}, // no name, image or volumes resolved
	}}

	out := Resolve(context.Background(), b, "/tmp/proj")

	assert.Equal(t, []string{"c1"}, out.Containers)
	assert.Empty(t, out.Images)
	assert.Empty(t, out.Volumes)
}
