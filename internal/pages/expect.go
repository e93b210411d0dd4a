package pages

import (
	"fmt"
	"strconv"

	"github.com/stretchr/testify/assert"

	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
)

// recorder satisfies assert.TestingT and keeps the failure text instead of failing a test.
type recorder struct {
	msg string
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.msg = fmt.Sprintf(format, args...)
}

func expectContains(subject, expected, actual string) error {
	var r recorder
	if assert.Contains(&r, actual, expected) {
		return nil
	}
	return errors.NewAssertion(subject, expected, actual, r.msg)
}

func expectEqual[T comparable](subject string, expected, actual T) error {
	var r recorder
	if assert.Equal(&r, expected, actual) {
		return nil
	}
	return errors.NewAssertion(subject, format(expected), format(actual), r.msg)
}

func format(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
