package buildinfo

import (
	"strings"
	"testing"
)

func TestBuildInfo(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit {
		t.Errorf("Get = %+v", got)
	}
	if !strings.HasPrefix(String(), "version: v9.9.9\n") {
		t.Errorf("String = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template = %q", Template())
	}
}
