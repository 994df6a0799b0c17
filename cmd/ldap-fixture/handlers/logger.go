package handlers

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// NewLogger returns a zap-backed logger writing to w. Console encoding is
// used for terminals and when DEBUG=true; JSON otherwise, which the unit
// agent forwards to debug-log.
func NewLogger(w io.Writer) logr.Logger {
	opts := zap.Options{
		Development: os.Getenv("DEBUG") == "true" || isTerminal(w),
		DestWriter:  w,
	}
	return zap.New(zap.UseFlagOptions(&opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
