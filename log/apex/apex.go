package apex

import (
	apexlog "github.com/apex/log"

	"github.com/unkn0wn-root/memoize"
)

type ApexLogger struct{ L apexlog.Interface }

func (a ApexLogger) Debug(msg string, f memoize.Fields) {
	a.L.WithFields(apexlog.Fields(f)).Debug(msg)
}
func (a ApexLogger) Info(msg string, f memoize.Fields) { a.L.WithFields(apexlog.Fields(f)).Info(msg) }
func (a ApexLogger) Warn(msg string, f memoize.Fields) { a.L.WithFields(apexlog.Fields(f)).Warn(msg) }
func (a ApexLogger) Error(msg string, f memoize.Fields) {
	a.L.WithFields(apexlog.Fields(f)).Error(msg)
}
