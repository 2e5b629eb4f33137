package chatkit_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	chatkit "github.com/goliatone/go-chatkit"
	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/delivery"
	"github.com/goliatone/go-chatkit/internal/di"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/pkg/testsupport"
	"github.com/goliatone/go-chatkit/styles"
	"github.com/goliatone/go-chatkit/templates"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const deployTemplate = `---
title: Deployment {{status}}
category: success
silent: true
---
Service **{{service}}** finished deploying.
`

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
}

func TestModuleEndToEnd(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	writeTemplate(t, dir, "deploy-finished.md", deployTemplate)

	cfg := chatkit.DefaultConfig()
	cfg.Features.Templates = true
	cfg.Templates.Dir = dir

	transport := delivery.NewMemoryTransport()
	module, err := chatkit.New(cfg, di.WithTransport(transport))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	loaded, err := module.Templates().LoadDirectory(ctx, dir)
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	if loaded != 1 {
		t.Fatalf("expected 1 template, got %d", loaded)
	}

	msg, err := module.Templates().Render(ctx, templates.RenderInput{
		Slug: "deploy-finished",
		Vars: map[string]string{"status": "succeeded", "service": "api-gateway"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	ref, err := module.Delivery().Send(ctx, delivery.SendInput{
		ChannelID: "ops",
		Message:   msg,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if ref.ChannelID != "ops" {
		t.Fatalf("unexpected ref %#v", ref)
	}

	last, ok := transport.Last()
	if !ok {
		t.Fatal("expected a dispatch")
	}
	if !last.Message.Structured() {
		t.Fatal("rendered message must carry the structured flag")
	}
	if !last.Message.Flags.Has(message.FlagSuppressNotifications) {
		t.Fatal("silent template must suppress notifications")
	}
	if last.Message.Category != styles.CategorySuccess {
		t.Fatalf("unexpected category %q", last.Message.Category)
	}

	records, err := module.Audit().List(ctx, audit.ListInput{Kind: audit.KindSend})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(records) != 1 || records[0].Category != string(styles.CategorySuccess) {
		t.Fatalf("unexpected audit records %#v", records)
	}
}

func TestModuleWithBunAudit(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if _, err := bunDB.NewCreateTable().Model((*audit.Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	transport := delivery.NewMemoryTransport()
	module, err := chatkit.New(chatkit.DefaultConfig(),
		di.WithTransport(transport),
		di.WithBunDB(bunDB),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	msg, err := message.NewCategory(styles.CategoryWarning, "Disk space low").
		Text("Volume /data is at 91% capacity.").
		Build()
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	if _, err := module.Delivery().Send(ctx, delivery.SendInput{ChannelID: "alerts", Message: msg}); err != nil {
		t.Fatalf("send: %v", err)
	}

	records, err := module.Audit().List(ctx, audit.ListInput{})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(records) != 1 || records[0].Kind != audit.KindSend {
		t.Fatalf("unexpected audit records %#v", records)
	}
}

func TestModuleRejectsLegacyEmbeds(t *testing.T) {
	module, err := chatkit.New(chatkit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	msg, err := message.NewCategory(styles.CategoryInfo, "Status").
		Text("All systems nominal.").
		Build()
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	msg.Embeds = []message.LegacyEmbed{{Title: "legacy"}}

	if _, err := module.Delivery().Send(context.Background(), delivery.SendInput{
		ChannelID: "ops",
		Message:   msg,
	}); err == nil {
		t.Fatal("legacy embeds must not pass the strict checker")
	}
}
