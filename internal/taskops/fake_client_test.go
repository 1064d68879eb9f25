package taskops

import (
	"context"
	"fmt"

	"github.com/ticktools/tickdone/internal/ticktick"
)

// fakeClient implements Client against in-memory state and records
// every mutating call so tests can assert on call order and counts.
// It intentionally does not implement Syncer; see fakeSyncClient.
type fakeClient struct {
	tasks    []ticktick.Task
	projects []ticktick.Project
	zone     string

	createErr      error
	updateErr      error
	deleteErr      error
	objectErr      error
	completeErr    error
	projectErr     error
	projectErrOnce bool

	createCalls   []ticktick.TaskPayload
	updateCalls   []ticktick.Task
	deleteCalls   []string
	objectCalls   []ticktick.Task
	completeCalls []ticktick.Task
	projectAdds   []string
	projectColors []string
	projectDels   []string
}

func (f *fakeClient) Tasks() []ticktick.Task {
	return append([]ticktick.Task(nil), f.tasks...)
}

func (f *fakeClient) Projects() []ticktick.Project {
	return append([]ticktick.Project(nil), f.projects...)
}

func (f *fakeClient) GetByID(id string) *ticktick.Task {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			task := f.tasks[i]
			return &task
		}
	}
	return nil
}

func (f *fakeClient) ProjectByID(id string) *ticktick.Project {
	for i := range f.projects {
		if f.projects[i].ID == id {
			project := f.projects[i]
			return &project
		}
	}
	return nil
}

func (f *fakeClient) CreateTask(ctx context.Context, payload ticktick.TaskPayload) (*ticktick.Task, error) {
	f.createCalls = append(f.createCalls, payload)
	if f.createErr != nil {
		return nil, f.createErr
	}
	task := ticktick.Task{
		ID:        fmt.Sprintf("task-%d", len(f.createCalls)),
		ProjectID: payload.ProjectID,
		Title:     payload.Title,
		Content:   payload.Content,
		Priority:  payload.Priority,
		StartDate: payload.StartDate,
		DueDate:   payload.DueDate,
		TimeZone:  payload.TimeZone,
	}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *fakeClient) UpdateTask(ctx context.Context, task ticktick.Task) (*ticktick.Task, error) {
	f.updateCalls = append(f.updateCalls, task)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = task
		}
	}
	return &task, nil
}

func (f *fakeClient) DeleteTask(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.removeTask(id)
	return nil
}

func (f *fakeClient) DeleteTaskObject(ctx context.Context, task ticktick.Task) error {
	f.objectCalls = append(f.objectCalls, task)
	if f.objectErr != nil {
		return f.objectErr
	}
	f.removeTask(task.ID)
	return nil
}

func (f *fakeClient) CompleteTask(ctx context.Context, task ticktick.Task) error {
	f.completeCalls = append(f.completeCalls, task)
	return f.completeErr
}

func (f *fakeClient) CreateProject(ctx context.Context, name, colorHex string) (*ticktick.Project, error) {
	f.projectAdds = append(f.projectAdds, name)
	f.projectColors = append(f.projectColors, colorHex)
	if f.projectErr != nil {
		err := f.projectErr
		if f.projectErrOnce {
			f.projectErr = nil
		}
		return nil, err
	}
	project := ticktick.Project{
		ID:    fmt.Sprintf("project-%d", len(f.projectAdds)),
		Name:  name,
		Color: colorHex,
	}
	f.projects = append(f.projects, project)
	return &project, nil
}

func (f *fakeClient) DeleteProject(ctx context.Context, id string) error {
	f.projectDels = append(f.projectDels, id)
	return f.projectErr
}

func (f *fakeClient) TimeZone(ctx context.Context) string {
	return f.zone
}

func (f *fakeClient) removeTask(id string) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return
		}
	}
}

// fakeSyncClient adds a Sync method so the service's Syncer type
// assertion succeeds.
type fakeSyncClient struct {
	*fakeClient
	syncErr   error
	syncCalls int
	onSync    func(*fakeClient)
}

func (f *fakeSyncClient) Sync(ctx context.Context) error {
	f.syncCalls++
	if f.onSync != nil {
		f.onSync(f.fakeClient)
	}
	return f.syncErr
}
