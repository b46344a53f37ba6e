package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmcateer/classtrack/internal/app/resources"
	"go.uber.org/zap"
)

var (
	bootTemplatesOnce sync.Once
	bootTemplatesErr  error
)

// BootTemplates boots the global template engine so handlers under test can
// render pages. Feature template sets register themselves in init when the
// test imports the feature package; the shared set is loaded here. The
// engine boots once per test binary.
func BootTemplates(t *testing.T) {
	t.Helper()
	bootTemplatesOnce.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if err := eng.Boot(zap.NewNop()); err != nil {
			bootTemplatesErr = err
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	if bootTemplatesErr != nil {
		t.Fatalf("template engine boot failed: %v", bootTemplatesErr)
	}
}
