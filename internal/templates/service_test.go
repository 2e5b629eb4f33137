package templates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
	"github.com/goliatone/go-chatkit/templates"
)

func TestRegisterNormalizesSlug(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	definition, err := svc.Register(context.Background(), templates.RegisterInput{
		Slug:     "Deploy Failed",
		Title:    "Deploy failed",
		Category: styles.CategoryError,
		Blocks:   []message.Block{message.TextBlock{Content: "it broke"}},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if definition.Slug != "deploy-failed" {
		t.Fatalf("expected normalized slug, got %q", definition.Slug)
	}
	if definition.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected deterministic id")
	}

	again, err := svc.Get(context.Background(), " DEPLOY failed ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.ID != definition.ID {
		t.Fatalf("expected stable id across lookups")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Register(context.Background(), templates.RegisterInput{
		Title:  "missing slug",
		Blocks: []message.Block{message.TextBlock{Content: "x"}},
	}); err == nil {
		t.Fatalf("expected slug validation error")
	}

	if _, err := svc.Register(context.Background(), templates.RegisterInput{
		Slug:     "bad-category",
		Category: "fatal",
		Blocks:   []message.Block{message.TextBlock{Content: "x"}},
	}); err == nil {
		t.Fatalf("expected category validation error")
	}

	if _, err := svc.Register(context.Background(), templates.RegisterInput{
		Slug: "no-body",
	}); err == nil {
		t.Fatalf("expected empty body validation error")
	}
}

func TestGetUnknownSlug(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, templates.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	write("deploy-failed.md", "---\ntitle: Deploy failed\ncategory: error\n---\nit broke\n")
	write("deploy-ok.md", "---\ntitle: Deploy finished\ncategory: success\n---\nall good\n")
	write("notes.txt", "not a template")

	svc := NewService(NewMemoryRepository())
	count, err := svc.LoadDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 templates, got %d", count)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(list))
	}
	if list[0].Slug != "deploy-failed" || list[1].Slug != "deploy-ok" {
		t.Fatalf("expected sorted slugs, got %q %q", list[0].Slug, list[1].Slug)
	}
}

func TestRenderSubstitutesAndConforms(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Register(context.Background(), templates.RegisterInput{
		Slug:     "deploy-failed",
		Title:    "Deploy failed: {{service}}",
		Category: styles.CategoryError,
		Blocks: []message.Block{
			message.TextBlock{Content: "rollback {{service}} before retrying"},
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	msg, err := svc.Render(context.Background(), templates.RenderInput{
		Slug: "deploy-failed",
		Vars: map[string]string{"service": "billing"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	heading, _ := msg.Containers[0].FirstText()
	if !strings.Contains(heading, "Deploy failed: billing") {
		t.Fatalf("expected substituted title, got %q", heading)
	}
	if msg.Containers[0].Accent == nil || *msg.Containers[0].Accent != styles.ToneError {
		t.Fatalf("expected category accent applied")
	}
	if !msg.Structured() {
		t.Fatalf("expected structured flag on rendered message")
	}

	body, ok := msg.Containers[0].Blocks[1].(message.TextBlock)
	if !ok || !strings.Contains(body.Content, "rollback billing") {
		t.Fatalf("expected substituted body, got %+v", msg.Containers[0].Blocks[1])
	}
}

func TestRenderEphemeralOverride(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Register(context.Background(), templates.RegisterInput{
		Slug:      "quota",
		Title:     "Quota exceeded",
		Category:  styles.CategoryWarning,
		Ephemeral: true,
		Blocks:    []message.Block{message.TextBlock{Content: "slow down"}},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	msg, err := svc.Render(context.Background(), templates.RenderInput{Slug: "quota"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !msg.Ephemeral() {
		t.Fatalf("expected ephemeral flag pair from template")
	}

	public := false
	msg, err = svc.Render(context.Background(), templates.RenderInput{Slug: "quota", Ephemeral: &public})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if msg.Ephemeral() {
		t.Fatalf("expected override to disable ephemeral delivery")
	}
}
