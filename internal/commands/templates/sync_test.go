package templatescmd_test

import (
	"context"
	"errors"
	"testing"

	templatescmd "github.com/goliatone/go-chatkit/internal/commands/templates"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/templates"
	goerrors "github.com/goliatone/go-errors"
)

type fakeTemplateService struct {
	templates.Service
	loaded []string
	count  int
	err    error
}

func (f *fakeTemplateService) LoadDirectory(_ context.Context, dir string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.loaded = append(f.loaded, dir)
	return f.count, nil
}

func (f *fakeTemplateService) Render(context.Context, templates.RenderInput) (*message.Message, error) {
	return nil, templates.ErrTemplateNotFound
}

func TestSyncDirectoryHandler(t *testing.T) {
	svc := &fakeTemplateService{count: 4}
	handler := templatescmd.NewSyncDirectoryHandler(svc, nil)

	if err := handler.Execute(context.Background(), templatescmd.SyncDirectoryCommand{Dir: "templates/chat"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.loaded) != 1 || svc.loaded[0] != "templates/chat" {
		t.Fatalf("unexpected loads %v", svc.loaded)
	}
}

func TestSyncDirectoryHandlerDefaultDir(t *testing.T) {
	svc := &fakeTemplateService{}
	handler := templatescmd.NewSyncDirectoryHandler(svc, nil,
		templatescmd.SyncWithDefaultDir("templates/default"))

	if err := handler.Execute(context.Background(), templatescmd.SyncDirectoryCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(svc.loaded) != 1 || svc.loaded[0] != "templates/default" {
		t.Fatalf("unexpected loads %v", svc.loaded)
	}
}

func TestSyncDirectoryHandlerValidation(t *testing.T) {
	handler := templatescmd.NewSyncDirectoryHandler(&fakeTemplateService{}, nil)

	err := handler.Execute(context.Background(), templatescmd.SyncDirectoryCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncDirectoryHandlerLoadError(t *testing.T) {
	svc := &fakeTemplateService{err: errors.New("directory missing")}
	handler := templatescmd.NewSyncDirectoryHandler(svc, nil)

	err := handler.Execute(context.Background(), templatescmd.SyncDirectoryCommand{Dir: "missing"})
	if err == nil {
		t.Fatal("expected execute error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
