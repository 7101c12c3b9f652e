package core

import "fmt"

// Fatal reports a protocol violation. It logs the error and panics with it so
// the abort unwinds through deferred cleanup instead of exiting the process.
func Fatal(err error, format string, args ...interface{}) {
	if format != "" {
		err = fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
	}
	getLogger().Error(err.Error())
	panic(err)
}

// Assert calls Fatal when cond does not hold.
func Assert(cond bool, err error, format string, args ...interface{}) {
	if !cond {
		Fatal(err, format, args...)
	}
}
