package appctx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/db"
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/joplin"
	"github.com/lherron/joplin2fnx/internal/testutil"
)

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JOPLIN_TOKEN", "")
	t.Setenv("JOPLIN2FNX_SOURCE", "")
	oldCwd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldCwd) })
	os.Chdir(t.TempDir())

	cmd := &cobra.Command{Use: "test"}
	for _, name := range []string{"url", "token", "db", "source", "log-level", "log-format"} {
		cmd.Flags().String(name, "", name)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	cmd.SetContext(context.Background())
	return cmd
}

func TestBootstrap_ConfigOnly(t *testing.T) {
	cmd := testCommand(t, "--log-level", "debug")

	app, err := Bootstrap(cmd, ConfigOnly())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if app.Config.LogLevel != "debug" {
		t.Errorf("flag override not applied: %q", app.Config.LogLevel)
	}
	if app.Source != nil {
		t.Error("Source should be nil when NeedsSource is false")
	}
	if app.Log.Data["run_id"] == "" {
		t.Error("expected run_id on the logger")
	}
}

func TestBootstrap_WithDB(t *testing.T) {
	path := testutil.JoplinDB(t, []domain.FolderRecord{testutil.Folder("1", "", "Work")}, nil)
	cmd := testCommand(t, "--source", "db", "--db", path)

	app, err := Bootstrap(cmd, DefaultOptions())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if _, ok := app.Source.(*db.DB); !ok {
		t.Fatalf("expected *db.DB source, got %T", app.Source)
	}
	folders, err := app.Source.Folders(context.Background())
	if err != nil || len(folders) != 1 {
		t.Fatalf("Folders = %v, %v", folders, err)
	}

	app.Close()
	app.Close()
}

func TestBootstrap_APINeedsToken(t *testing.T) {
	cmd := testCommand(t)

	_, err := Bootstrap(cmd, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestBootstrap_APIPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "JoplinClipperServer")
	}))
	defer srv.Close()

	cmd := testCommand(t, "--url", srv.URL, "--token", "t")
	app, err := Bootstrap(cmd, DefaultOptions())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer app.Close()

	if _, ok := app.Source.(*joplin.Client); !ok {
		t.Fatalf("expected *joplin.Client source, got %T", app.Source)
	}
}

func TestBootstrap_InvalidSource(t *testing.T) {
	cmd := testCommand(t, "--source", "carrier-pigeon")
	if _, err := Bootstrap(cmd, ConfigOnly()); err == nil {
		t.Fatal("expected invalid source error")
	}
}
