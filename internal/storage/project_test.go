package storage

import (
	"path/filepath"
	"testing"

	"videoflow/internal/types"
	"videoflow/log"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	log.InitLogger()
}

func openTestDB(t *testing.T) {
	t.Helper()
	err := OpenDB(filepath.Join(t.TempDir(), "videoflow.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { DB = nil })
}

func sampleProject() *types.Project {
	return &types.Project{
		Id:     "proj-1",
		UserId: "user-1",
		Title:  "Launch Teaser",
		Status: types.ProjectStatusDraft,
		Scenes: []types.Scene{
			{Id: "scene-a", ProjectId: "proj-1", OrderIndex: 0, TextSegment: "Welcome.", VisualPrompt: "An office", Duration: 5},
			{Id: "scene-b", ProjectId: "proj-1", OrderIndex: 1, TextSegment: "Goodbye.", VisualPrompt: "A skyline", Duration: 6},
		},
	}
}

func TestSaveAndGetProject(t *testing.T) {
	openTestDB(t)

	assert.NoError(t, SaveProject(sampleProject()))

	got, err := GetProject("proj-1")
	assert.NoError(t, err)
	assert.Equal(t, "Launch Teaser", got.Title)
	assert.Len(t, got.Scenes, 2)
	assert.Equal(t, "scene-a", got.Scenes[0].Id)
	assert.Equal(t, "scene-b", got.Scenes[1].Id)
}

func TestSaveProjectReplacesScenes(t *testing.T) {
	openTestDB(t)

	assert.NoError(t, SaveProject(sampleProject()))

	updated := sampleProject()
	updated.Scenes = []types.Scene{
		{Id: "scene-c", ProjectId: "proj-1", OrderIndex: 0, TextSegment: "New take.", VisualPrompt: "A studio", Duration: 4},
	}
	assert.NoError(t, SaveProject(updated))

	got, err := GetProject("proj-1")
	assert.NoError(t, err)
	assert.Len(t, got.Scenes, 1)
	assert.Equal(t, "scene-c", got.Scenes[0].Id)
}

func TestGetProjectScenesOrdered(t *testing.T) {
	openTestDB(t)

	project := sampleProject()
	project.Scenes[0], project.Scenes[1] = project.Scenes[1], project.Scenes[0]
	assert.NoError(t, SaveProject(project))

	got, err := GetProject("proj-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, got.Scenes[0].OrderIndex)
	assert.Equal(t, 1, got.Scenes[1].OrderIndex)
}

func TestDeleteProjectCascades(t *testing.T) {
	openTestDB(t)

	assert.NoError(t, SaveProject(sampleProject()))
	assert.NoError(t, DeleteProject("proj-1"))

	_, err := GetProject("proj-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	assert.NoError(t, DB.Model(&types.Scene{}).Where("project_id = ?", "proj-1").Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateScene(t *testing.T) {
	openTestDB(t)

	assert.NoError(t, SaveProject(sampleProject()))

	scene, err := GetScene("scene-a")
	assert.NoError(t, err)
	scene.AudioUrl = "/files/proj-1/scene-a.wav"
	scene.AudioDegraded = true
	assert.NoError(t, UpdateScene(scene))

	got, err := GetScene("scene-a")
	assert.NoError(t, err)
	assert.Equal(t, "/files/proj-1/scene-a.wav", got.AudioUrl)
	assert.True(t, got.AudioDegraded)
}

func TestListProjectsMostRecentFirst(t *testing.T) {
	openTestDB(t)

	first := sampleProject()
	assert.NoError(t, SaveProject(first))

	second := &types.Project{Id: "proj-2", UserId: "user-1", Title: "Second", Status: types.ProjectStatusDraft}
	assert.NoError(t, SaveProject(second))

	projects, err := ListProjects(0)
	assert.NoError(t, err)
	assert.Len(t, projects, 2)
}
