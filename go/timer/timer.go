// timer makes timing operations easier.
package timer

import (
	"time"

	"github.com/hako/durafmt"
	"go.skia.org/minicalc/go/sklog"
)

// Timer is for timing events. When finished the duration is reported
// via sklog at debug level.
//
// The standard way to use Timer is at the top of the func you
// want to measure:
//
//	defer timer.New("evaluating").Stop()
type Timer struct {
	Begin time.Time
	Name  string
}

func New(name string) *Timer {
	return &Timer{
		Begin: time.Now(),
		Name:  name,
	}
}

// Stop logs the time elapsed since New and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.Begin)
	sklog.Debugf("%s took %s", t.Name, durafmt.Parse(d))
	return d
}
