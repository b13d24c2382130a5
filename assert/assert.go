//go:build !noassert

package assert

import (
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"
)

var disabled atomic.Bool

// Disable turns off assertion evaluation globally.
// This is concurrency safe, but it affects every goroutine that uses assertions, so it should generally only appear in test code.
func Disable() {
	disabled.Store(true)
}

// Enable re-enables assertion evaluation after a call to Disable.
func Enable() {
	disabled.Store(false)
}

func getCallerDetails() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("'%s#%d'", file, line)
}

// True panics with descriptive information if result is not true.
func True(label string, result bool) {
	if disabled.Load() {
		return
	}
	if !result {
		panic(fmt.Sprintf("assertion '%s' failed at %s", label, getCallerDetails()))
	}
}

// TrueFunc panics with descriptive information if assertion returns false.
// Unlike [True], the assertion is not evaluated at all when assertions are disabled.
func TrueFunc(label string, assertion func() bool) {
	if disabled.Load() {
		return
	}
	if !assertion() {
		panic(fmt.Sprintf("assertion '%s' failed at %s", label, getCallerDetails()))
	}
}

// NotNil panics if val is nil, including a typed nil pointer, function, or interface value.
func NotNil(label string, val any) {
	if disabled.Load() {
		return
	}
	if isNil(val) {
		panic(fmt.Sprintf("assertion '%s' failed at %s", label, getCallerDetails()))
	}
}

func isNil(val any) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Chan, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
